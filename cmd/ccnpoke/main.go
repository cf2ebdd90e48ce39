// Command ccnpoke publishes a ContentObject under a name, either
// immediately or lazily in response to the first matching Interest —
// the reference CCNx toolkit's publish-on-demand tool, avoiding
// flooding a daemon with unsolicited content it has nobody listening
// for yet.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/akaash-nigam/ccnx/client"
	"github.com/akaash-nigam/ccnx/face"
	"github.com/akaash-nigam/ccnx/internal/config"
	"github.com/akaash-nigam/ccnx/internal/nameflag"
	"github.com/akaash-nigam/ccnx/wire"
	"github.com/spf13/cobra"
)

type pokeCmd struct {
	configPath string
	transport  string
	file       string
	timeoutMs  int
	immediate  bool
}

func newPokeCmd() *cobra.Command {
	pc := &pokeCmd{}
	cmd := &cobra.Command{
		Use:     "ccnpoke NAME",
		Short:   "Publish stdin (or --file) as a ContentObject under NAME",
		Args:    cobra.ExactArgs(1),
		Example: "  echo hello | ccnpoke /example/data",
		RunE:    pc.run,
	}
	cmd.Flags().StringVarP(&pc.configPath, "config", "c", "", "path to a YAML client config")
	cmd.Flags().StringVarP(&pc.transport, "transport", "t", "", "transport URI, overriding config/CCN_LOCAL_PORT")
	cmd.Flags().StringVarP(&pc.file, "file", "f", "", "read content from this file instead of stdin")
	cmd.Flags().IntVarP(&pc.timeoutMs, "timeout", "w", 5000, "how long to wait for a matching Interest, in milliseconds (ignored with --immediate)")
	cmd.Flags().BoolVarP(&pc.immediate, "immediate", "i", false, "send the ContentObject right away instead of waiting for a matching Interest")
	return cmd
}

func (pc *pokeCmd) run(_ *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(pc.configPath)
	if err != nil {
		return err
	}
	if pc.transport != "" {
		cfg.TransportURI = pc.transport
	}
	if cfg.Debug {
		os.Setenv("CCN_DEBUG", "1")
	}

	payload, err := pc.readPayload()
	if err != nil {
		return fmt.Errorf("ccnpoke: %w", err)
	}
	comps := nameflag.Parse(args[0])
	msg := wire.BuildContentObject(comps, payload, nil)

	h := client.NewHandle()
	if cfg.TransportURI != "" {
		f, err := face.NewFromURI(cfg.TransportURI)
		if err != nil {
			return fmt.Errorf("ccnpoke: %w", err)
		}
		h = client.NewHandle(client.WithFace(f))
	}
	if err := h.Connect(""); err != nil {
		return fmt.Errorf("ccnpoke: connect: %w", err)
	}
	defer h.Destroy()

	if pc.immediate {
		if err := h.Put(msg); err != nil {
			return fmt.Errorf("ccnpoke: put: %w", err)
		}
		return nil
	}

	served := make(chan struct{}, 1)
	action := client.NewClosure(func(info *client.UpcallInfo) client.UpcallResult {
		if info.Kind != client.UpcallInterest {
			return client.ResultOK
		}
		if err := h.Put(msg); err != nil {
			return client.ResultErr
		}
		select {
		case served <- struct{}{}:
		default:
		}
		return client.ResultOK
	})
	if err := h.SetInterestFilter(comps, action); err != nil {
		return fmt.Errorf("ccnpoke: %w", err)
	}

	deadline := time.Duration(pc.timeoutMs) * time.Millisecond
	start := time.Now()
	for time.Since(start) < deadline {
		select {
		case <-served:
			return nil
		default:
		}
		if err := h.Run(50 * time.Millisecond); err != nil {
			return fmt.Errorf("ccnpoke: %w", err)
		}
	}
	return fmt.Errorf("ccnpoke: no Interest for %s arrived within %s", args[0], deadline)
}

func (pc *pokeCmd) readPayload() ([]byte, error) {
	if pc.file != "" {
		return os.ReadFile(pc.file)
	}
	return io.ReadAll(os.Stdin)
}

func main() {
	if err := newPokeCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
