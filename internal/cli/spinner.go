package cli

import (
	"context"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spin shows an indeterminate spinner on w while fn runs. The spinner is
// cleared when fn returns; fn's error is returned unchanged.
func Spin(ctx context.Context, w io.Writer, description string, fn func(context.Context) error) error {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[green]"+description+"[reset]"),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan struct{})
	ticked := make(chan struct{})
	go func() {
		defer close(ticked)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	err := fn(ctx)
	close(done)
	<-ticked
	_ = bar.Finish()
	return err
}
