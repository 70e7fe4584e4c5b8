package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/internal/msgs"
	"github.com/ranforge/asn1per/per"
)

func main() {
	var (
		msgType     = flag.String("type", "", "Message type to decode (see -list)")
		hexInput    = flag.String("hex", "", "Encoded message as hex")
		file        = flag.String("file", "", "Read the encoded message from a file (- for stdin)")
		list        = flag.Bool("list", false, "List message types and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		configPath  = flag.String("config", "", "Config file (.toml or .yaml)")
		verbose     = flag.Bool("v", false, "Log skipped extensions and unknown alternatives")
		bits        = flag.Int("bits", 0, "Dump the first N bits before decoding")
		strict      = flag.Bool("strict", false, "Reject trailing data after the message")
		maxDepth    = flag.Int("max-depth", 0, "Nesting limit for recursive types")
	)
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "type":
			cfg.msgType = *msgType
		case "v":
			if *verbose {
				cfg.logLevel = zapcore.DebugLevel
			}
		case "strict":
			cfg.strict = *strict
		case "max-depth":
			cfg.maxDepth = *maxDepth
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	per.SetLogger(logger)

	if *list {
		for _, name := range msgs.Names() {
			fmt.Println(name)
		}
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cfg.msgType == "" || (*hexInput == "" && *file == "") {
		fmt.Fprintln(os.Stderr, "Usage: perdump -type <name> -hex <bytes> [-strict] [-bits n] [-v]")
		fmt.Fprintln(os.Stderr, "       perdump -type <name> -file <path|->")
		fmt.Fprintln(os.Stderr, "       perdump -list")
		fmt.Fprintln(os.Stderr, "       perdump -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(cfg, *hexInput, *file, *bits, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	return zc.Build()
}

func run(cfg config, hexInput, file string, bits int, out io.Writer) error {
	var (
		data []byte
		err  error
	)
	switch {
	case hexInput != "":
		data, err = parseHex(hexInput)
	case file == "-":
		data, err = io.ReadAll(os.Stdin)
	default:
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if bits > 0 {
		if err := dumpBits(out, data, bits); err != nil {
			return fmt.Errorf("dump bits: %w", err)
		}
		fmt.Fprintln(out)
	}

	text, err := decode(cfg, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%d octets)\n", cfg.msgType, len(data))
	_, err = io.WriteString(out, text)
	return err
}

func decodeOptions(cfg config) []per.DecodeOption {
	opts := []per.DecodeOption{per.WithMaxDepth(cfg.maxDepth)}
	if cfg.strict {
		opts = append(opts, per.WithStrictTrailing())
	}
	return opts
}

// decode decodes data as cfg.msgType and renders it as YAML.
func decode(cfg config, data []byte) (string, error) {
	m, err := msgs.Decode(cfg.msgType, data, decodeOptions(cfg)...)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", cfg.msgType, err)
	}
	text, err := yaml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return string(text), nil
}

// parseHex accepts hex with optional 0x prefix, whitespace and ':' or '-'
// separators.
func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':', '-':
			return -1
		}
		return r
	}, s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "hex input")
	}
	return data, nil
}
