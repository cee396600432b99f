/*
 * coulomb.go, part of atomstruct.
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

package atomstruct

import (
	"context"
	"runtime"

	v3 "github.com/rmera/atomstruct/v3"
	"golang.org/x/sync/errgroup"
)

// coulombConst converts e^2/A to kcal/mol.
const coulombConst = 332.0636

// PotentialOptions controls ElectrostaticPotential.
type PotentialOptions struct {
	DistanceDependent bool    //use a dielectric of Dielectric*r
	Dielectric        float64 //0 means 4 with DistanceDependent, 1 otherwise
	Workers           int     //0 means GOMAXPROCS
	ChunkSize         int     //points per task, 0 means 256
}

// ElectrostaticPotential returns the Coulomb potential, in kcal/(mol e), at
// each point, from point charges placed on atoms. Points closer than 1e-6 A
// to an atom ignore that atom. The points are split in chunks evaluated
// concurrently; the inputs are only read.
func ElectrostaticPotential(ctx context.Context, points []v3.Point, atoms []*Atom, charges []float64, opts PotentialOptions) ([]float64, error) {
	if len(atoms) != len(charges) {
		return nil, newError(KindInvalidArgument, "ElectrostaticPotential", "%d charges for %d atoms", len(charges), len(atoms))
	}
	diel := opts.Dielectric
	if diel <= 0 {
		diel = 1
		if opts.DistanceDependent {
			diel = 4
		}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := opts.ChunkSize
	if chunk <= 0 {
		chunk = 256
	}
	coords := make([]v3.Point, len(atoms))
	for i, a := range atoms {
		coords[i] = a.Coord()
	}
	ret := make([]float64, len(points))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(points); start += chunk {
		start := start
		end := min(start+chunk, len(points))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				ret[i] = pointPotential(points[i], coords, charges, diel, opts.DistanceDependent)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}

func pointPotential(p v3.Point, coords []v3.Point, charges []float64, diel float64, distDep bool) float64 {
	var pot float64
	for j, c := range coords {
		if distDep {
			r2 := p.SqDistance(c)
			if r2 < 1e-12 {
				continue
			}
			pot += charges[j] / (diel * r2)
			continue
		}
		r := p.Distance(c)
		if r < 1e-6 {
			continue
		}
		pot += charges[j] / (diel * r)
	}
	return coulombConst * pot
}
