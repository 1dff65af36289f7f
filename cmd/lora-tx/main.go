package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/kc2g-lora/lora-phy/pkg/config"
	"github.com/kc2g-lora/lora-phy/pkg/lora"
	"github.com/kc2g-lora/lora-phy/pkg/logging"
)

func main() {
	var (
		sf         = flag.Int("sf", 7, "spreading factor (7-12)")
		bw         = flag.Int("bw", 125000, "bandwidth in Hz (125000, 250000, 500000)")
		osr        = flag.Int("osr", 1, "oversampling ratio")
		syncWord   = flag.Int("sync", 0x12, "sync word byte")
		message    = flag.String("message", "", "payload bytes as an ASCII string")
		output     = flag.String("output", "", "output file for interleaved float32 IQ samples")
		configPath = flag.String("config", "", "optional YAML config enabling file/structured logging")
	)
	flag.Parse()

	if *message == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -message \"hello\" -output burst.iq [options]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *output == "" {
		fmt.Fprintln(os.Stderr, "an -output path is required")
		os.Exit(1)
	}

	var cfg *config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		if err := logging.InitGlobalLogger(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "initializing logger: %v\n", err)
			os.Exit(1)
		}
		defer logging.CloseGlobalLogger()
	}

	p := lora.Params{
		SF:       *sf,
		BW:       lora.Bandwidth(*bw),
		OSR:      *osr,
		Window:   lora.WindowNone,
		SyncWord: byte(*syncWord),
	}

	n := p.N()
	ws := &lora.Workspace{
		SymbolScratch: make([]complex128, n),
		FFTIn:         make([]complex128, n),
		FFTOut:        make([]complex128, n),
	}
	if err := lora.Init(ws, p); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}

	payload := []byte(*message)
	syms := make([]uint16, 2*len(payload))
	symCount, err := lora.Encode(payload, syms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		os.Exit(1)
	}
	syms = syms[:symCount]

	iq := make([]complex128, (len(syms)+2)*p.Step())
	total, err := lora.Modulate(ws, syms, iq, 1.0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "modulate failed: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", *output, err)
		os.Exit(1)
	}
	defer f.Close()

	buf := make([]byte, 8)
	for _, s := range iq[:total] {
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(real(s))))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(imag(s))))
		if _, err := f.Write(buf); err != nil {
			fmt.Fprintf(os.Stderr, "writing samples: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("wrote %d IQ samples (%d symbols + sync) to %s\n", total, len(syms), *output)
	if cfg != nil {
		logging.WithChannel(p.SF, int(p.BW), p.OSR).Infof("lora-tx", "wrote %d IQ samples (%d symbols + sync) to %s", total, len(syms), *output)
	}
}
