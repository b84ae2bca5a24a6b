// Command dragon32 wires the emulator core (internal/machine) to a real
// terminal, clipboard, audio device, and frame buffer via internal/hostio,
// and drives the executive loop. ROM/disk/cassette image loading and the
// run loop below are this command's own glue around the core.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dragon32/dragon32-core/internal/diskimage"
	"github.com/dragon32/dragon32-core/internal/dragonlog"
	"github.com/dragon32/dragon32-core/internal/hostio"
	"github.com/dragon32/dragon32-core/internal/machine"
	"github.com/dragon32/dragon32-core/internal/pia"
	"github.com/dragon32/dragon32-core/internal/tapeimage"
)

// romBase is the BASIC cartridge ROM window's starting address.
const romBase = 0x8000

func main() {
	fs := flag.NewFlagSet("dragon32", flag.ExitOnError)
	romPath := fs.String("rom", "", "path to the BASIC ROM image (required)")
	diskPath := fs.String("disk", "", "path to a VDK/raw floppy image to mount on drive 0")
	casPath := fs.String("cas", "", "path to write captured cassette output as a CAS image")
	audioRate := fs.Int("audio-rate", 15625, "DAC sample rate in Hz")
	scale := fs.Int("scale", 3, "integer scale factor for the video frame buffer")
	fs.Parse(os.Args[1:])

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "dragon32: -rom is required")
		os.Exit(1)
	}

	log := dragonlog.New(os.Stderr, dragonlog.LevelInfo, nil)

	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("reading ROM image: %v", err)
	}

	diskImg, err := diskimage.Open(*diskPath)
	if err != nil {
		log.Fatalf("opening disk image: %v", err)
	}

	tapeOut, err := tapeimage.Create(*casPath)
	if err != nil {
		log.Fatalf("opening cassette output: %v", err)
	}
	defer tapeOut.Close()

	kbd, err := hostio.NewTermKeyboard(int(os.Stdin.Fd()))
	if err != nil {
		log.Warnf("terminal keyboard unavailable, running headless: %v", err)
	} else {
		defer kbd.Close()
	}

	dac, err := hostio.NewOtoDAC(*audioRate)
	var dacSource pia.DAC
	if err != nil {
		log.Warnf("audio device unavailable: %v", err)
	} else {
		dacSource = dac
		defer dac.Close()
	}

	fb := hostio.NewImageFrameBuffer(*scale)
	clock := hostio.NewMonotonicClock()
	reset := &hostio.ManualResetButton{}

	// kbd is a *hostio.TermKeyboard, which may be nil when no terminal is
	// available (err != nil above); only assign it into the
	// pia.KeyboardSource interface field when non-nil, or the interface
	// value itself would be non-nil (a nil-pointer-in-non-nil-interface)
	// and trip the PIA's own nil check.
	var keyboardSource pia.KeyboardSource
	if kbd != nil {
		keyboardSource = kbd
	}

	m := machine.New(machine.Collaborators{
		Keyboard:    keyboardSource,
		Joystick:    hostio.NullJoystick{},
		DAC:         dacSource,
		ResetButton: reset,
		Clock:       clock,
		DiskImage:   diskImg,
		TapeOutput:  tapeOut,
		Log:         log,
		BasicROM:    rom,
	})
	m.LoadROM(romBase, rom)
	m.SetExecVector(romBase)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	log.Infof("dragon32: running, rom=%s disk=%s cas=%s", *romPath, *diskPath, *casPath)
	run(m, fb, sigCh)
}

// run steps the machine until sigCh fires, rendering a frame buffer
// snapshot at roughly the VDG's own 50 Hz refresh cadence. The core has
// no notion of wall-clock pacing itself, so the harness throttles its own
// loop rather than spinning Step() unbounded.
func run(m *machine.Machine, fb *hostio.ImageFrameBuffer, sigCh <-chan os.Signal) {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			return
		case <-ticker.C:
			for i := 0; i < 20_000; i++ { // roughly one 20ms tick of 1 MHz-ish execution
				m.Step()
			}
			fb.Update(m.VDG.FrameBuffer())
		}
	}
}
