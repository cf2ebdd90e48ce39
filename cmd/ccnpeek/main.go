// Command ccnpeek expresses a single Interest and prints the first
// matching ContentObject's payload to stdout, the reference CCNx
// toolkit's one-shot fetch tool.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akaash-nigam/ccnx/client"
	"github.com/akaash-nigam/ccnx/face"
	"github.com/akaash-nigam/ccnx/internal/config"
	"github.com/akaash-nigam/ccnx/internal/nameflag"
	"github.com/akaash-nigam/ccnx/wire"
	"github.com/spf13/cobra"
)

type peekCmd struct {
	configPath string
	transport  string
	timeoutMs  int
}

func newPeekCmd() *cobra.Command {
	pc := &peekCmd{}
	cmd := &cobra.Command{
		Use:     "ccnpeek NAME",
		Short:   "Fetch one ContentObject matching NAME and print it to stdout",
		Args:    cobra.ExactArgs(1),
		Example: "  ccnpeek /example/data -t unix:///tmp/.ccnd.sock",
		RunE:    pc.run,
	}
	cmd.Flags().StringVarP(&pc.configPath, "config", "c", "", "path to a YAML client config")
	cmd.Flags().StringVarP(&pc.transport, "transport", "t", "", "transport URI, overriding config/CCN_LOCAL_PORT")
	cmd.Flags().IntVarP(&pc.timeoutMs, "timeout", "w", 3000, "how long to wait for content, in milliseconds")
	return cmd
}

func (pc *peekCmd) run(_ *cobra.Command, args []string) error {
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

	h := client.NewHandle()
	if cfg.TransportURI != "" {
		f, err := face.NewFromURI(cfg.TransportURI)
		if err != nil {
			return fmt.Errorf("ccnpeek: %w", err)
		}
		h = client.NewHandle(client.WithFace(f))
	}
	if err := h.Connect(""); err != nil {
		return fmt.Errorf("ccnpeek: connect: %w", err)
	}
	defer h.Destroy()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(pc.timeoutMs)*time.Millisecond)
	defer cancel()

	comps := nameflag.Parse(args[0])
	var template []byte
	if lifetime, ok := cfg.Lifetime().Get(); ok {
		template = wire.BuildInterest(comps, wire.EncodeLifetimeTrailer(lifetime))
	}

	res, err := h.Get(ctx, comps, template)
	if err != nil {
		return fmt.Errorf("ccnpeek: %w", err)
	}
	payload, err := wire.ExtractContent(res.Msg)
	if err != nil {
		return fmt.Errorf("ccnpeek: %w", err)
	}
	_, err = os.Stdout.Write(payload)
	return err
}

func main() {
	if err := newPeekCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
