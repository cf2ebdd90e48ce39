// Command ccndump indexes a CCN_TAP capture file (as written by
// face.UnixFace's tap sink) into a small on-disk database keyed by byte
// offset, then prints a human-readable summary. This is diagnostic
// tooling over captured bytes, not Handle state: nothing here persists
// across a Handle's own restarts, matching spec's no-persistence
// Non-goal for the library itself.
package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/akaash-nigam/ccnx/wire"
	"github.com/dgraph-io/badger/v4"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type dumpCmd struct {
	dbPath string
}

func newDumpCmd() *cobra.Command {
	dc := &dumpCmd{}
	cmd := &cobra.Command{
		Use:     "ccndump TAPFILE",
		Short:   "Index a CCN_TAP capture file and print a summary",
		Args:    cobra.ExactArgs(1),
		Example: "  ccndump /tmp/ccn-tap-1234-1700000000-500000",
		RunE:    dc.run,
	}
	cmd.Flags().StringVar(&dc.dbPath, "db", "", "badger index directory (default: a temp dir, discarded on exit)")
	return cmd
}

type record struct {
	kind   string
	offset int
	length int
}

func (dc *dumpCmd) run(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("ccndump: %w", err)
	}

	dbPath := dc.dbPath
	if dbPath == "" {
		tmp, err := os.MkdirTemp("", "ccndump-index-*")
		if err != nil {
			return fmt.Errorf("ccndump: %w", err)
		}
		defer os.RemoveAll(tmp)
		dbPath = tmp
	}

	db, err := badger.Open(badger.DefaultOptions(dbPath))
	if err != nil {
		return fmt.Errorf("ccndump: open index: %w", err)
	}
	defer db.Close()

	records, err := indexCaptures(db, raw)
	if err != nil {
		return fmt.Errorf("ccndump: %w", err)
	}

	var interests, contentObjects, other int
	for _, r := range records {
		switch r.kind {
		case "interest":
			interests++
		case "content":
			contentObjects++
		default:
			other++
		}
	}

	fmt.Printf("%s messages framed (%s)\n", humanize.Comma(int64(len(records))), humanize.Bytes(uint64(len(raw))))
	fmt.Printf("  interests:       %s\n", humanize.Comma(int64(interests)))
	fmt.Printf("  content objects: %s\n", humanize.Comma(int64(contentObjects)))
	if other > 0 {
		fmt.Printf("  unparseable:     %s\n", humanize.Comma(int64(other)))
	}
	return nil
}

// indexCaptures frames raw into top-level messages with the same
// skeleton decoder the live Handle uses, classifies each, and writes it
// into db keyed by its byte offset so a later lookup can seek straight
// to any captured message.
func indexCaptures(db *badger.DB, raw []byte) ([]record, error) {
	var records []record
	var dec wire.Decoder
	msgStart := 0

	err := db.Update(func(txn *badger.Txn) error {
		for msgStart < len(raw) {
			dec.Decode(raw[msgStart:])
			if dec.State != 0 {
				break // trailing partial message: capture ended mid-write
			}
			// dec.Index is cumulative across every Decode call so far,
			// and msgStart has always advanced to match it, so it reads
			// directly as msg's absolute end offset into raw.
			msgEnd := dec.Index
			msg := raw[msgStart:msgEnd]

			kind := classify(msg)
			records = append(records, record{kind: kind, offset: msgStart, length: len(msg)})

			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(msgStart))
			if err := txn.Set(key, append([]byte(kind+":"), msg...)); err != nil {
				return err
			}
			msgStart = msgEnd
		}
		return nil
	})
	return records, err
}

func classify(msg []byte) string {
	if _, err := wire.ParseInterest(msg); err == nil {
		return "interest"
	}
	if _, err := wire.ParseContentObject(msg); err == nil {
		return "content"
	}
	return "unknown"
}

func main() {
	if err := newDumpCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
