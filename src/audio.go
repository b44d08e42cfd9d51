package tonekey

/*------------------------------------------------------------------
 *
 * Purpose:   	Live audio capture from the line interface.
 *
 * Description: The line interface shows up as an ordinary capture
 *		device, so this is a thin PortAudio wrapper: open the
 *		default input, read fixed-size blocks on a dedicated
 *		goroutine (the audio task), and hand each block to the
 *		decoder.  Buffers are reused; the capture loop does not
 *		allocate per block.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// CaptureSource reads mono audio blocks from the default input device.
// It implements BlockSource.
type CaptureSource struct {
	sampleRate int
	blockSize  int

	mu      sync.Mutex
	stream  *portaudio.Stream
	done    chan struct{}
	stopped sync.WaitGroup
}

// NewCaptureSource prepares a capture source.  blockSize is the capture
// granularity, not the detection block size; the decoder accumulates
// samples internally, so any reasonable value works.
func NewCaptureSource(sampleRate, blockSize int) *CaptureSource {
	return &CaptureSource{
		sampleRate: sampleRate,
		blockSize:  blockSize,
	}
}

/*------------------------------------------------------------------
 *
 * Name:	Start
 *
 * Purpose:	Open the default capture device and begin delivering
 *		blocks to the handler.
 *
 * Inputs:	handler	- Receives each block on the capture goroutine.
 *			  Must be bounded-time; it runs between device
 *			  reads and a slow handler causes overruns.
 *
 *----------------------------------------------------------------*/

func (c *CaptureSource) Start(handler func([]float64)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		return fmt.Errorf("capture already running")
	}

	if initErr := portaudio.Initialize(); initErr != nil {
		return fmt.Errorf("initializing portaudio: %w", initErr)
	}

	var in = make([]float32, c.blockSize)
	var stream, openErr = portaudio.OpenDefaultStream(1, 0, float64(c.sampleRate), c.blockSize, in)
	if openErr != nil {
		portaudio.Terminate() //nolint:errcheck
		return fmt.Errorf("opening capture stream: %w", openErr)
	}
	if startErr := stream.Start(); startErr != nil {
		stream.Close()        //nolint:errcheck
		portaudio.Terminate() //nolint:errcheck
		return fmt.Errorf("starting capture stream: %w", startErr)
	}

	c.stream = stream
	c.done = make(chan struct{})
	c.stopped.Add(1)

	go func() {
		defer c.stopped.Done()

		var block = make([]float64, c.blockSize)
		for {
			select {
			case <-c.done:
				return
			default:
			}

			if readErr := stream.Read(); readErr != nil {
				// Overruns and device teardown both end up here.
				// The decoder degrades to silence either way.
				return
			}
			for i, s := range in {
				block[i] = float64(s)
			}
			handler(block)
		}
	}()

	return nil
}

// Stop ends capture and releases the device.  Safe to call more than
// once or without a successful Start.
func (c *CaptureSource) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream == nil {
		return nil
	}

	close(c.done)
	c.stream.Abort() //nolint:errcheck
	c.stopped.Wait()

	var closeErr = c.stream.Close()
	c.stream = nil
	portaudio.Terminate() //nolint:errcheck
	return closeErr
}
