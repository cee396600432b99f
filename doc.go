/*
 * doc.go, part of atomstruct.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package atomstruct is an in-memory molecular model: a graph of atoms, bonds,
residues, chains and pseudobonds, with the machinery to track its changes,
cache derived properties and save it as a flat session.


	**atomstruct Capabilities**


    Builds structures atom by atom through the Structure factory methods
	(NewAtom, NewBond, NewResidue, NewCoordSet...). Every atom has one
	coordinate per coordinate set, and optional alternate locations.

    Keeps pseudobonds (missing structure, metal coordination, hydrogen bonds
	and the like) in named groups, either per structure or per coordinate set.
	A global PBManager holds groups whose pseudobonds join different structures.

    Reports every creation, modification and deletion to a changes.Tracker,
	and every destroyed entity to a destruct.Coordinator, so dependent objects
	(chains, pseudobonds, caches) never see dangling pointers.

    Computes and caches rings (SSSR or all rings up to a size), polymers,
	bonded groups and the Main/Ligand/Ions/Solvent partition of the atoms.
	Caches are dropped whenever the graph changes.

    Builds chains from polymers, associating them with SEQRES records when
	these are given, so residues missing from the model are kept as gaps.

    Serializes a structure into versioned integer, float and string streams
	and rebuilds it from them. The sessionstore package keeps those sessions
	in a badger database.

    Computes electrostatic potentials over many points concurrently.


The pdbio package reads PDB files into a Structure, chemplot draws per-residue
properties with gonum/plot and cmd/atomstruct is a command line front end to
all of the above.

A Structure is not safe for concurrent use.*/
package atomstruct
