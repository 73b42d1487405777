// This file is part of Glimmer.
//
// Glimmer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Glimmer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Glimmer.  If not, see <https://www.gnu.org/licenses/>.

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/glimmerproject/glimmer/curated"
)

// profileRun wraps the run function with cpu profiling and writes a heap
// profile once the run has completed. Output files are named after the tag.
func profileRun(tag string, run func() error) error {
	cpuF, err := os.Create(tag + "_cpu.profile")
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer cpuF.Close()

	if err := pprof.StartCPUProfile(cpuF); err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer pprof.StopCPUProfile()

	if err := run(); err != nil {
		return err
	}

	memF, err := os.Create(tag + "_mem.profile")
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	defer memF.Close()

	runtime.GC()
	if err := pprof.WriteHeapProfile(memF); err != nil {
		return curated.Errorf("performance: %v", err)
	}

	return nil
}
