package inventory

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
)

const snapshotHeader = "description,id"

// WriteSnapshotTo writes the audit CSV: a "description,id" header and one
// "name,id" row per entry. Values are joined verbatim, without quoting.
func WriteSnapshotTo(w io.Writer, inv *Inventory) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, snapshotHeader); err != nil {
		return err
	}
	for _, e := range inv.Entries() {
		if _, err := fmt.Fprintf(bw, "%s,%d\n", e.Name, e.ID); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteSnapshot atomically replaces the file at path with the snapshot.
func WriteSnapshot(path string, inv *Inventory) (err error) {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending snapshot file: %w", err)
	}
	defer func() {
		// no-op once committed
		if cerr := pendingFile.Cleanup(); cerr != nil && err == nil {
			err = fmt.Errorf("cleanup pending snapshot file: %w", cerr)
		}
	}()

	if err := WriteSnapshotTo(pendingFile, inv); err != nil {
		return fmt.Errorf("write snapshot data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace snapshot file: %w", err)
	}
	return nil
}
