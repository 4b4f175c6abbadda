package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/colorfulnotion/intcode/intcode"
	"github.com/colorfulnotion/intcode/intcode/program"
	log "github.com/colorfulnotion/intcode/log"
)

type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
}

// console bridges a VM to a terminal. In ASCII mode outputs below 128 are
// printed as characters and each input line is queued as its bytes plus a
// newline; otherwise values are exchanged as integers.
type console struct {
	vm      *intcode.VM
	in      lineReader
	out     io.Writer
	ascii   bool
	pending strings.Builder
}

func runConsole(img program.Image, cfg intcode.Config, ascii bool) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "? ",
		HistoryFile: filepath.Join(os.TempDir(), "intcode_console_history.txt"),
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	cfg.Identifier = "console"
	c := &console{vm: intcode.NewVMWithConfig(img, cfg), in: rl, out: rl.Stdout(), ascii: ascii}
	return c.run()
}

func (c *console) flush() {
	if c.pending.Len() > 0 {
		fmt.Fprint(c.out, c.pending.String())
		c.pending.Reset()
	}
}

func (c *console) emit(v int64) {
	if c.ascii && v >= 0 && v < 128 {
		c.pending.WriteByte(byte(v))
		if v == '\n' {
			c.flush()
		}
		return
	}
	c.flush()
	fmt.Fprintln(c.out, v)
}

// feed reads lines until one yields at least one input value.
func (c *console) feed() error {
	for {
		c.in.SetPrompt(c.prompt())
		line, err := c.in.Readline()
		if err != nil {
			return err
		}
		if c.ascii {
			for _, b := range []byte(line) {
				c.vm.PushInput(int64(b))
			}
			c.vm.PushInput('\n')
			return nil
		}
		vals, err := parseInts(line)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		if len(vals) > 0 {
			c.vm.PushInputs(vals...)
			return nil
		}
	}
}

func (c *console) prompt() string {
	if c.ascii {
		prompt := c.pending.String()
		c.pending.Reset()
		return prompt
	}
	return "? "
}

func (c *console) run() error {
	for {
		state, err := c.vm.Run()
		if err != nil {
			c.flush()
			return err
		}
		switch state {
		case intcode.HAS_OUTPUT:
			v, err := c.vm.LastOutput()
			if err != nil {
				return err
			}
			c.emit(v)
		case intcode.NEED_INPUT:
			if err := c.feed(); err != nil {
				c.flush()
				if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
					log.Info(log.CLIMonitoring, "console closed while program waits for input", "pc", c.vm.PC())
					return nil
				}
				return err
			}
		case intcode.HALTED:
			c.flush()
			log.Debug(log.CLIMonitoring, "console program halted", "steps", c.vm.Steps())
			return nil
		}
	}
}
