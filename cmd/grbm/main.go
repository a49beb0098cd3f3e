// Command grbm trains a Gaussian-Bernoulli RBM from a JSON
// configuration bundle and writes the trained model back out as a JSON
// snapshot.
package main

import (
	"flag"
	"log"

	"github.com/gorgonia/grbm"
	"github.com/gorgonia/grbm/render"
)

func main() {
	configPath := flag.String("config", "", "json with the config of the rbm")
	threshold := flag.Float64("threshold", 200, "display threshold for reconstructed samples")
	width := flag.Int("width", 0, "units per row when displaying reconstructed samples")
	curves := flag.String("curves", "", "optional png of the reconstruction error curve")
	energies := flag.String("energies", "", "optional png of the free energy curves")
	history := flag.String("history", "", "optional csv dump of the training history")
	flag.Parse()

	if *configPath == "" {
		log.Fatal("no -config given")
	}
	conf, err := grbm.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if conf.Verbose {
		conf.Display = render.ASCII{Threshold: *threshold, Width: *width}
	}

	g, err := grbm.New(conf)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if err := g.Train(); err != nil {
		log.Fatalf("training failed: %+v", err)
	}
	if conf.Outfile != "" {
		if err := g.Save(conf.Outfile); err != nil {
			log.Fatalf("cannot save model: %+v", err)
		}
	}

	d := grbm.DiagnosticsOf(g.Machine)
	if *curves != "" {
		if err := render.WriteCostCurve(d.Costs, *curves); err != nil {
			log.Fatalf("cannot plot cost curve: %+v", err)
		}
	}
	if *energies != "" {
		if err := render.WriteFreeEnergyCurves(d.TrainFreeEnergies, d.ValidationFreeEnergies, *energies); err != nil {
			log.Fatalf("cannot plot free energy curves: %+v", err)
		}
	}
	if *history != "" {
		if err := d.Dump(*history); err != nil {
			log.Fatalf("cannot dump history: %+v", err)
		}
	}
}
