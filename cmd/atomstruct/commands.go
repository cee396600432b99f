/*
 * commands.go, part of atomstruct.
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

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rmera/atomstruct"
	"github.com/rmera/atomstruct/chemplot"
	"github.com/rmera/atomstruct/pdbio"
	"github.com/spf13/cobra"
)

var (
	noDistanceBonds bool
	plotChain       string
	plotOut         string
	plotProperty    string

	infoCmd = &cobra.Command{
		Use:   "info FILE",
		Short: "Read a PDB file and summarize its contents",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	saveCmd = &cobra.Command{
		Use:   "save FILE",
		Short: "Read a PDB file and store its session, printing the session ID",
		Args:  cobra.ExactArgs(1),
		RunE:  runSave,
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the stored sessions",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	restoreCmd = &cobra.Command{
		Use:   "restore ID",
		Short: "Rebuild a stored session and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE:  runRestore,
	}
	deleteCmd = &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a stored session",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	plotCmd = &cobra.Command{
		Use:   "plot FILE",
		Short: "Plot per-residue B-factors or occupancies of a PDB file",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
)

func init() {
	for _, c := range []*cobra.Command{infoCmd, saveCmd, plotCmd} {
		c.Flags().BoolVar(&noDistanceBonds, "no-distance-bonds", false, "only use CONECT records for bonds")
	}
	plotCmd.Flags().StringVar(&plotChain, "chain", "", "chain to plot (default: every chain)")
	plotCmd.Flags().StringVar(&plotOut, "out", "residues.png", "output file; the extension sets the format")
	plotCmd.Flags().StringVar(&plotProperty, "property", "bfactor", "bfactor or occupancy")
	rootCmd.AddCommand(infoCmd, saveCmd, listCmd, restoreCmd, deleteCmd, plotCmd)
}

func read(name string) (*atomstruct.Structure, error) {
	return pdbio.ReadFile(name, !noDistanceBonds, structureOptions()...)
}

func runInfo(cmd *cobra.Command, args []string) error {
	S, err := read(args[0])
	if err != nil {
		return err
	}
	summarize(cmd.OutOrStdout(), S)
	return nil
}

func runSave(cmd *cobra.Command, args []string) error {
	S, err := read(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	id, err := store.Save(cmd.Context(), S)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, m := range list {
		fmt.Fprintf(w, "%s  %-20s v%d  %6d atoms  %5d residues  %8d bytes  %s\n",
			m.ID, m.Name, m.Version, m.Atoms, m.Residues, m.Bytes, m.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid session ID %q: %w", args[0], err)
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	S, err := store.Load(cmd.Context(), id, structureOptions()...)
	if err != nil {
		return err
	}
	summarize(cmd.OutOrStdout(), S)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid session ID %q: %w", args[0], err)
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Delete(cmd.Context(), id)
}

func runPlot(cmd *cobra.Command, args []string) error {
	var prop chemplot.Property
	switch strings.ToLower(plotProperty) {
	case "bfactor", "b-factor", "b":
		prop = chemplot.BFactor
	case "occupancy", "occ":
		prop = chemplot.Occupancy
	default:
		return fmt.Errorf("unknown property %q", plotProperty)
	}
	S, err := read(args[0])
	if err != nil {
		return err
	}
	chains := []string{plotChain}
	if plotChain == "" {
		chains = chains[:0]
		for _, c := range S.Chains() {
			chains = append(chains, c.ChainID())
		}
	}
	var series []chemplot.Series
	for _, id := range chains {
		s, err := chemplot.ResidueProperty(S, id, prop, "HOH")
		if err != nil {
			return err
		}
		series = append(series, s)
	}
	p, err := chemplot.Plot(fmt.Sprintf("%s %s", S.Name(), prop), series...)
	if err != nil {
		return err
	}
	if err := chemplot.Save(p, plotOut); err != nil {
		return err
	}
	logger.Info("plot written", "file", plotOut, "chains", len(series))
	return nil
}

// summarize prints the counts and derived properties of S.
func summarize(w io.Writer, S *atomstruct.Structure) {
	fmt.Fprintf(w, "%s: %d atoms, %d bonds, %d residues, %d coordinate sets\n",
		S.Name(), S.NumAtoms(), S.NumBonds(), S.NumResidues(), len(S.CoordSets()))
	polymers := S.Polymers(true, true)
	fmt.Fprintf(w, "polymers: %d\n", len(polymers))
	for _, p := range polymers {
		first, last := p.Residues[0], p.Residues[len(p.Residues)-1]
		fmt.Fprintf(w, "  %s %s%d-%d (%d residues)\n", p.Type, first.ChainID(), first.Number(), last.Number(), len(p.Residues))
	}
	cats := make(map[atomstruct.StructCat]int)
	for _, a := range S.Atoms() {
		cats[a.StructureCategory()]++
	}
	var names []string
	for c, n := range cats {
		names = append(names, fmt.Sprintf("%s=%d", c, n))
	}
	sort.Strings(names)
	fmt.Fprintf(w, "categories: %s\n", strings.Join(names, " "))
	rings := S.Rings(cfg.Rings.CrossResidues, cfg.Rings.AllSizeThreshold, nil)
	fmt.Fprintf(w, "rings: %d\n", len(rings))
	for _, c := range S.Chains() {
		src := "structure"
		if c.FromSeqres() {
			src = "SEQRES"
		}
		fmt.Fprintf(w, "chain %s (%s, %d/%d resolved): %s\n", c.ChainID(), src, len(c.ExistingResidues()), len(c.Residues()), c.Characters())
	}
}
