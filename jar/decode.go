package jar

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dhamidi/jclass/classfile"
)

type Options struct {
	// Workers bounds the number of classes decoded at once. Zero means
	// GOMAXPROCS.
	Workers int
	// Timeout applies to each class. Zero means no limit.
	Timeout time.Duration
	// Decode is passed to classfile.ParseBytes for every class.
	Decode []classfile.Option
	// EntryOptions, when set, adds options for a single entry after Decode.
	EntryOptions func(e *Entry) []classfile.Option
}

// Result is the outcome of decoding one class entry. Exactly one of Class
// and Err is set.
type Result struct {
	Entry *Entry
	Class *classfile.ClassFile
	Err   error
}

// DecodeAll decodes every class entry of the archive. Results are in entry
// order; a class that fails to decode is reported in its Result and does
// not stop the others. Entries not yet started when ctx is done get
// ctx.Err().
func (a *Archive) DecodeAll(ctx context.Context, opts Options) []Result {
	classes := a.Classes()
	results := make([]Result, len(classes))
	if len(classes) == 0 {
		return results
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, len(classes))
	log.Debug("decoding classes", "archive", a.Path, "classes", len(classes), "workers", workers)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = decodeEntry(ctx, classes[i], opts)
			}
		}()
	}

	next := 0
feed:
	for ; next < len(classes); next++ {
		select {
		case jobs <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(classes); i++ {
		results[i] = Result{Entry: classes[i], Err: fmt.Errorf("decode %s: %w", classes[i].Path, ctx.Err())}
	}
	return results
}

func decodeEntry(ctx context.Context, e *Entry, opts Options) Result {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	type outcome struct {
		class *classfile.ClassFile
		err   error
	}
	done := make(chan outcome, 1)
	decodeOpts := opts.Decode
	if opts.EntryOptions != nil {
		decodeOpts = append(decodeOpts[:len(decodeOpts):len(decodeOpts)], opts.EntryOptions(e)...)
	}
	go func() {
		class, err := classfile.ParseBytes(e.Data, decodeOpts...)
		done <- outcome{class, err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			log.Warning("class not decoded", "path", e.Path, "error", o.err.Error())
			return Result{Entry: e, Err: fmt.Errorf("decode %s: %w", e.Path, o.err)}
		}
		log.Debug("class decoded", "path", e.Path, "class", o.class.ClassName())
		return Result{Entry: e, Class: o.class}
	case <-ctx.Done():
		log.Warning("class decode abandoned", "path", e.Path, "error", ctx.Err().Error())
		return Result{Entry: e, Err: fmt.Errorf("decode %s: %w", e.Path, ctx.Err())}
	}
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
