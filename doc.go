/*
 * doc.go, part of freud.
 *
 * Copyright 2021 Raul Mera A. (raulpuntomeraatusachpuntocl)
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package freud is the main package of the freud library. It provides the interfaces, options
and errors shared by the accumulators that compute spatial statistics over particle
configurations taken from molecular dynamics trajectories.



	**freud Capabilities**


    Anisotropic potentials of mean force in 3D (package pmft), binned in the frame
	of a face of each reference particle.

    Static structure factors S(k), either directly from all the pairwise distances
	or from the Fourier transform of the radial distribution function (package diffraction).

    Radial distribution functions (package density).

    Mean squared displacements, with a direct and an FFT based algorithm (package msd).

    Periodic orthorhombic boxes in 2D and 3D (package box) and cell lists (package locality).


All the accumulators work the same way: An accumulator is created with a fixed histogram geometry,
and Accumulate is called once per frame. Each call splits the work among a pool of goroutines,
each of which writes only to its own private histogram (package histo). Asking for the result
merges the private histograms and applies the normalization. Calling Accumulate again
adds to the previous frames until Reset is called.

Coordinates are given as *v3.Matrix, where each row is the position of one particle. Orientations
are unit quaternions (gonum's quat.Number).*/
package freud
