// Command namegen trains a character-level recurrent network on a word
// list and samples new, similarly-structured words.
//
// Usage:
//
//	namegen [flags] wordlist.txt
//
// The word list is any text file; it is cleaned into a list of words
// before training. Pass -model to skip training and reuse a previously
// saved checkpoint.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/4OH4/startup-name-generator/internal/encode"
	"github.com/4OH4/startup-name-generator/internal/generate"
	"github.com/4OH4/startup-name-generator/internal/nn"
	"github.com/4OH4/startup-name-generator/internal/optim"
	"github.com/4OH4/startup-name-generator/internal/serialization"
	"github.com/4OH4/startup-name-generator/internal/train"
	"github.com/4OH4/startup-name-generator/internal/vocab"
	"github.com/4OH4/startup-name-generator/internal/wordlist"
)

// progressInterval is how often (in epochs) verbose mode samples a
// progress word during training.
const progressInterval = 50

type options struct {
	wordlistPath string
	savePath     string
	modelPath    string
	temperature  float64
	nwords       int
	epochs       int
	verbose      bool
}

func parseOptions() (options, error) {
	var opts options
	flag.StringVar(&opts.savePath, "save", "", "path to save the trained model")
	flag.StringVar(&opts.modelPath, "model", "", "skip training and load a previously saved model from this path")
	flag.Float64Var(&opts.temperature, "temperature", 1.0, "sampling randomness; 0.5 is conservative, 1.5 is adventurous")
	flag.IntVar(&opts.nwords, "nwords", 10, "number of words to generate")
	flag.IntVar(&opts.epochs, "epochs", train.DefaultEpochs, "number of training epochs")
	flag.BoolVar(&opts.verbose, "v", false, "report corpus details and training progress")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] wordlist.txt\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		return opts, errors.New("exactly one word-list path is required")
	}
	opts.wordlistPath = flag.Arg(0)

	// Configuration errors are fatal before any computation begins.
	if opts.modelPath != "" && opts.savePath != "" {
		return opts, errors.New("-model and -save are mutually exclusive")
	}
	if opts.temperature <= 0 {
		return opts, fmt.Errorf("temperature must be > 0, got %v", opts.temperature)
	}
	if opts.nwords < 0 {
		return opts, fmt.Errorf("nwords must be >= 0, got %d", opts.nwords)
	}
	if opts.epochs <= 0 {
		return opts, fmt.Errorf("epochs must be > 0, got %d", opts.epochs)
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, "namegen:", err)
		flag.Usage()
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		log.Fatalf("namegen: %v", err)
	}
}

func run(opts options) error {
	words, err := wordlist.Load(opts.wordlistPath)
	if err != nil {
		return err
	}
	v, err := vocab.Build(words)
	if err != nil {
		return err
	}

	if opts.verbose {
		fmt.Printf("%d words\n\n", len(words))
		fmt.Printf("vocabulary of %d characters, including the \\n:\n%q\n", v.Size(), string(v.Chars()))
		if len(words) >= 2 {
			fmt.Printf("\nFirst two sample words:\n%q %q\n", words[0], words[1])
		}
	}

	var model *nn.CharLM
	if opts.modelPath != "" {
		model, err = serialization.Load(opts.modelPath)
		if err != nil {
			return err
		}
		if model.VocabSize() != v.Size() {
			return fmt.Errorf("model was trained on a %d-character vocabulary, this corpus has %d",
				model.VocabSize(), v.Size())
		}
	} else {
		ds, err := encode.Encode(words, v)
		if err != nil {
			return err
		}
		model = nn.NewCharLM(v.Size(), nn.DefaultConfig())
		if model, err = fit(model, ds, v, opts); err != nil {
			return err
		}
		if opts.savePath != "" {
			if err := serialization.Save(model, opts.savePath); err != nil {
				return err
			}
		}
	}

	sampler, err := generate.NewSampler(opts.temperature, -1)
	if err != nil {
		return err
	}
	gen := generate.NewGenerator(model, v, sampler)
	gen.Verbose = opts.verbose
	for _, word := range gen.Words(opts.nwords) {
		fmt.Println(word)
	}
	return nil
}

func fit(model *nn.CharLM, ds *encode.Dataset, v *vocab.Vocabulary, opts options) (*nn.CharLM, error) {
	cfg := train.Config{
		Epochs: opts.epochs,
		Seed:   -1,
	}
	if opts.verbose {
		// Progress sampling at temperature 1; observational only.
		sampler, err := generate.NewSampler(1.0, -1)
		if err != nil {
			return nil, err
		}
		gen := generate.NewGenerator(model, v, sampler)
		cfg.EpochEnd = func(epoch int, loss float64) {
			if epoch%progressInterval == 0 {
				fmt.Printf("epoch %d: loss=%.4f sample=%s\n", epoch, loss, gen.Word())
			}
		}
	}

	opt := optim.NewRMSProp(model.Parameters(), optim.RMSPropConfig{})
	trainer := train.NewTrainer(model, opt, cfg)
	if err := trainer.Fit(ds); err != nil {
		return nil, err
	}
	return model, nil
}
