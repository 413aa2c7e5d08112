package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/molgrid/gridmaker"
	"github.com/molgrid/gridmaker/density"
	"github.com/molgrid/gridmaker/io"
)

const (
	// Number of points used when plotting the density model.
	profilePoints = 301
	// The plotted range extends this far past the cutoff.
	profileMargin = 1.2
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil { log.Fatal(err.Error()) }
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil { log.Fatal(err.Error()) }
	}
}

var threads int

func main() {
	// The main function manages input sanitization and calls the secondary
	// main functions for each mode.

	var (
		gridStr, plotModel string
		exampleConfig      string
	)
	vars := map[string]*string{
		"Grid":          &gridStr,
		"PlotModel":     &plotModel,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", 1,
		"Number of channels voxelized at once. Output does not depend on "+
			"this value.",
	)
	flag.StringVar(
		&gridStr, "Grid", "",
		"Configuration file for [Grid] mode.",
	)
	flag.StringVar(
		&plotModel, "PlotModel", "",
		"Configuration file whose density model is plotted to 'PlotFile'.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Grid'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil { log.Fatal(err.Error()) }

	switch modeName {
	case "Grid":
		wrap, err := io.ReadGridConfig(gridStr)
		if err != nil { log.Fatal(err.Error()) }
		con := &wrap.Grid

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidResolution() {
			log.Fatal("Invalid/non-existent 'Resolution' value.")
		} else if !con.ValidDimension() {
			log.Fatal("Invalid/non-existent 'Dimension' value.")
		} else if !con.ValidInputFormat() {
			log.Fatal("'InputFormat' must be one of [ PDB | Table ].")
		} else if !con.ValidRadiusMultiple() {
			log.Fatal("Invalid 'RadiusMultiple' value.")
		} else if !con.ValidGaussianResolution() {
			log.Fatal("Invalid 'GaussianResolution' value.")
		}

		gridMain(wrap)

	case "PlotModel":
		wrap, err := io.ReadGridConfig(plotModel)
		if err != nil { log.Fatal(err.Error()) }
		con := &wrap.Grid

		if !con.ValidPlotFile() {
			log.Fatal("Invalid/non-existent 'PlotFile' value.")
		} else if !con.ValidRadiusMultiple() {
			log.Fatal("Invalid 'RadiusMultiple' value.")
		} else if !con.ValidGaussianResolution() {
			log.Fatal("Invalid 'GaussianResolution' value.")
		}

		plotModelMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "Grid":
			fmt.Println(io.ExampleGridFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Grid'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" { setNames = append(setNames, name) }
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gridmaker "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// gridMain reads the atoms, voxelizes them, and writes one DX file per
// channel.
func gridMain(wrap *io.GridWrapper) {
	con := &wrap.Grid
	fg := setupIO(con)
	defer fg.Close()

	tys, err := wrap.Types()
	if err != nil { log.Fatal(err.Error()) }
	types := make([]gridmaker.TypeInfo, len(tys))
	for i := range tys { types[i].Radius = tys[i].Radius }

	atoms, err := readAtoms(con, tys)
	if err != nil { log.Fatal(err.Error()) }
	log.Printf("Read %d atoms from %s.", len(atoms), con.Input)

	p := gridmaker.DefaultParams(con.Resolution, con.Dimension)
	p.RadiusMultiple = con.RadiusMultiple
	p.GaussianResolution = con.GaussianResolution
	p.Center = con.Center()
	p.Workers = threads
	if p.Workers > runtime.NumCPU() { p.Workers = runtime.NumCPU() }

	m, err := gridmaker.NewMaker(p)
	if err != nil { log.Fatal(err.Error()) }

	t0 := time.Now()
	grid, err := m.MakeGrid(atoms, types)
	if err != nil { log.Fatal(err.Error()) }
	log.Printf("Grid created: %v in %s.", grid.Shape(), time.Since(t0))

	origin, _ := m.Origin()
	log.Printf("Grid origin: %v", origin.Float64())

	for c := 0; c < grid.Channels; c++ {
		s := grid.Summary(c)
		log.Printf(
			"Channel %d (%s): max = %.6g at %v, sum = %.6g, %d non-zero cells.",
			c, tys[c].Name, s.Max, s.MaxCell, s.Sum, s.NonZero,
		)

		fname := fmt.Sprintf("%s_channel%d.dx", con.Output, c)
		if err := m.ExportChannelFile(grid, c, fname); err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("DX file exported to %s", fname)
	}
}

// readAtoms reads the input file and assigns each atom a channel.
func readAtoms(
	con *io.GridConfig, tys []io.TypeConfig,
) ([]gridmaker.Atom, error) {
	switch con.Format() {
	case io.TableFormat:
		xs, ys, zs, types, err := io.ReadAtomTable(con.Input)
		if err != nil { return nil, err }

		atoms := make([]gridmaker.Atom, len(xs))
		for i := range atoms {
			atoms[i] = gridmaker.Atom{X: xs[i], Y: ys[i], Z: zs[i], Type: types[i]}
		}
		return atoms, nil

	case io.PDBFormat:
		recs, err := io.ReadPDBFile(con.Input)
		if err != nil { return nil, err }

		typer := io.NewTyper(tys)
		atoms := make([]gridmaker.Atom, len(recs))
		for i, rec := range recs {
			c, ok := typer.Channel(rec.Name)
			if !ok {
				return nil, fmt.Errorf(
					"Atom %d ('%s') matches no Type Prefix and no Type "+
						"has an empty Prefix.", i, rec.Name,
				)
			}
			atoms[i] = gridmaker.Atom{X: rec.X, Y: rec.Y, Z: rec.Z, Type: c}
		}
		return atoms, nil
	}

	panic("Impossible")
}

// plotModelMain plots density against distance for an atom of unit radius.
func plotModelMain(con *io.GridConfig) {
	model := density.NewModel(con.RadiusMultiple, con.GaussianResolution)

	cutoff := model.Cutoff(1).Float64()
	core := model.Core(1).Float64()
	drs, rhos := model.Profile(cutoff*profileMargin, profilePoints)

	plt.Reset()
	plt.Figure()
	plt.Plot(drs, rhos, "k", plt.LW(2))
	plt.Plot([]float64{core, core}, []float64{0, 1}, plt.C("DarkTurquoise"))
	plt.Plot([]float64{cutoff, cutoff}, []float64{0, 1}, plt.C("DeepPink"))
	plt.Title(fmt.Sprintf(
		"RadiusMultiple = %g, GaussianResolution = %g",
		con.RadiusMultiple, con.GaussianResolution,
	))
	plt.XLabel(`$d / r$`, plt.FontSize(16))
	plt.YLabel(`$\rho$`, plt.FontSize(16))
	plt.YLim(0, 1.05)
	plt.SaveFig(con.PlotFile)
	plt.Execute()

	log.Printf("Density model plotted to %s", con.PlotFile)
}

// setupIO sets up the log and profile files named in con.
func setupIO(con *io.GridConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	// Set up log file.
	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil { log.Fatal(err.Error()) }
		log.SetOutput(fg.log)
	}

	// Set up profile file.
	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil { log.Fatal(err.Error()) }
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil { log.Fatal(err.Error()) }
	}

	return fg
}
