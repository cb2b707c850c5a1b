package ecfrag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ecfrag/ecfrag/internal/header"
)

// DataViews maps an ordered sequence of raw fragment buffers to the
// parallel sequence of payload views, preserving nil entries in place
// (position in the sequence encodes stripe index, so order matters).
// It returns the views and the number of non-nil entries resolved.
// Entries too short to hold a header resolve to nil and are not counted.
func DataViews(frags [][]byte) ([][]byte, int) {
	views := make([][]byte, len(frags))
	resolved := 0
	for i, frag := range frags {
		if frag == nil {
			continue
		}
		if v := DataOf(frag); v != nil {
			views[i] = v
			resolved++
		}
	}
	return views, resolved
}

// AllocStripe allocates n fragment buffers of the given payload size,
// stamping each header with its stripe index. On any allocation failure
// the fragments already allocated are freed and the error returned.
func AllocStripe(n, payloadSize int, opts ...Option) ([]*Fragment, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: stripe of %d fragments", ErrInvalidArgument, n)
	}

	frags := make([]*Fragment, 0, n)
	for i := 0; i < n; i++ {
		f, err := New(payloadSize, opts...)
		if err == nil {
			err = f.SetIndex(uint32(i)) //nolint:gosec // i < n, already range checked
		}
		if err != nil {
			ferr := FreeStripe(frags)
			return nil, errors.Join(fmt.Errorf("stripe fragment %d: %w", i, err), ferr)
		}
		frags = append(frags, f)
	}
	return frags, nil
}

// FreeStripe frees every non-nil fragment of a stripe, continuing past
// failures and joining the errors.
func FreeStripe(frags []*Fragment) error {
	var errs []error
	for i, f := range frags {
		if f == nil {
			continue
		}
		if err := f.Free(); err != nil {
			errs = append(errs, fmt.Errorf("stripe fragment %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// PresentSet returns the set of stripe positions holding a fragment with
// an intact header.
func PresentSet(frags [][]byte) *roaring.Bitmap {
	present := roaring.New()
	for i, frag := range frags {
		if frag != nil && header.Valid(frag) {
			present.Add(uint32(i)) //nolint:gosec // stripe positions are small
		}
	}
	return present
}

// MissingIndexes returns the stripe positions with no usable fragment,
// in ascending order. Reconstruction callers feed this to the backend as
// the erasure list.
func MissingIndexes(frags [][]byte) []int {
	var missing []int
	for i, frag := range frags {
		if frag == nil || !header.Valid(frag) {
			missing = append(missing, i)
		}
	}
	return missing
}

// VerifyReport summarizes a stripe verification pass.
type VerifyReport struct {
	// Checked is the number of non-nil fragments examined.
	Checked int
	// Invalid lists positions whose header failed the magic check.
	Invalid []int
	// Mismatched lists positions whose payload digest did not match the
	// header; those headers get their chksum_mismatch flag set.
	Mismatched []int
}

// Damaged returns the total number of positions that failed either check.
func (r VerifyReport) Damaged() int {
	return len(r.Invalid) + len(r.Mismatched)
}

// VerifyStripe validates the header and payload checksum of every
// non-nil fragment in the stripe. Fragments are verified concurrently:
// each worker touches only its own buffer, which is safe because the
// per-buffer serialization requirement binds callers, not distinct
// buffers. Damage is advisory and collected in the report; the error
// return is reserved for cancellation.
func VerifyStripe(ctx context.Context, frags [][]byte, opts ...Option) (VerifyReport, error) {
	o := applyOptions(opts)
	start := time.Now()

	const (
		statusOK = iota
		statusSkipped
		statusInvalid
		statusMismatched
	)
	statuses := make([]uint8, len(frags))

	g, ctx := errgroup.WithContext(ctx)
	for i, frag := range frags {
		if frag == nil {
			statuses[i] = statusSkipped
			continue
		}
		i, frag := i, frag
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Validate(frag); err != nil {
				statuses[i] = statusInvalid
				return nil
			}
			if err := verifyPayload(frag); err != nil {
				statuses[i] = statusMismatched
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.LogVerify(0, nil, nil, err)
		return VerifyReport{}, err
	}

	var report VerifyReport
	for i, s := range statuses {
		switch s {
		case statusSkipped:
			continue
		case statusInvalid:
			report.Invalid = append(report.Invalid, i)
		case statusMismatched:
			report.Mismatched = append(report.Mismatched, i)
		}
		report.Checked++
	}

	o.metrics.RecordVerifyStripe(report.Checked, report.Damaged(), time.Since(start))
	o.logger.LogVerify(report.Checked, report.Invalid, report.Mismatched, nil)
	return report, nil
}
