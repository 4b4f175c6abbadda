package host

import (
	"fmt"

	"github.com/colorfulnotion/intcode/intcode"
	"github.com/colorfulnotion/intcode/intcode/program"
	"github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/xlab/treeprint"
	"golang.org/x/exp/slices"
)

// Stage is one VM of a pipeline together with the phase setting it was
// primed with.
type Stage struct {
	Phase   int64
	VM      *intcode.VM
	Outputs int
	Last    int64
}

// Pipeline chains copies of one program: every output of stage i is queued
// as input to stage i+1, and with Feedback the last stage feeds stage 0.
type Pipeline struct {
	Stages   []*Stage
	Feedback bool
	Sweeps   int
}

// NewPipeline builds one stage per phase, each with its phase already queued.
func NewPipeline(image program.Image, cfg intcode.Config, phases []int64, feedback bool) (*Pipeline, error) {
	if len(phases) == 0 {
		return nil, vmerrors.ErrInvalidPhaseList
	}
	p := &Pipeline{Feedback: feedback}
	for i, phase := range phases {
		stageCfg := cfg
		stageCfg.Identifier = fmt.Sprintf("stage-%d", i)
		vm := intcode.NewVMWithConfig(image, stageCfg).PushInput(phase)
		p.Stages = append(p.Stages, &Stage{Phase: phase, VM: vm})
	}
	return p, nil
}

func (p *Pipeline) allHalted() bool {
	for _, s := range p.Stages {
		if !s.VM.Halted() {
			return false
		}
	}
	return true
}

// Run queues initial into stage 0 and drives the stages round-robin, one Run
// call per live stage per sweep, until every stage halts. It returns the last
// value the final stage emitted. A sweep in which no stage executes anything
// means every live stage waits on input that can never arrive.
func (p *Pipeline) Run(initial int64) (int64, error) {
	p.Stages[0].VM.PushInput(initial)
	last := p.Stages[len(p.Stages)-1]
	for !p.allHalted() {
		p.Sweeps++
		progress := false
		for i, s := range p.Stages {
			if s.VM.Halted() {
				continue
			}
			before := s.VM.Steps()
			state, err := s.VM.Run()
			if err != nil {
				return 0, err
			}
			if state != intcode.NEED_INPUT || s.VM.Steps() != before {
				progress = true
			}
			if state != intcode.HAS_OUTPUT {
				continue
			}
			v, err := s.VM.LastOutput()
			if err != nil {
				return 0, err
			}
			s.Outputs++
			s.Last = v
			next := i + 1
			if next == len(p.Stages) {
				if !p.Feedback {
					continue
				}
				next = 0
			}
			p.Stages[next].VM.PushInput(v)
		}
		if !progress {
			return 0, fmt.Errorf("%w (sweep=%d)", vmerrors.ErrPipelineStalled, p.Sweeps)
		}
	}
	log.Debug(log.HostMonitoring, "pipeline halted", "stages", len(p.Stages), "sweeps", p.Sweeps, "feedback", p.Feedback)
	if last.Outputs == 0 {
		return 0, vmerrors.ErrUnexpectedHalt
	}
	return last.Last, nil
}

func (s *Stage) status() string {
	switch {
	case s.VM.Err() != nil:
		return "FAULTED"
	case s.VM.Halted():
		return intcode.HALTED.String()
	default:
		return "RUNNING"
	}
}

// Tree renders the stages and their progress.
func (p *Pipeline) Tree() treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("pipeline stages=%d feedback=%v sweeps=%d", len(p.Stages), p.Feedback, p.Sweeps))
	for i, s := range p.Stages {
		branch := tree.AddBranch(fmt.Sprintf("stage %d phase=%d", i, s.Phase))
		branch.AddNode(fmt.Sprintf("state=%s steps=%d", s.status(), s.VM.Steps()))
		branch.AddNode(fmt.Sprintf("outputs=%d last=%d", s.Outputs, s.Last))
	}
	if p.Feedback {
		tree.AddNode(fmt.Sprintf("stage %d -> stage 0", len(p.Stages)-1))
	}
	return tree
}

// permute calls fn with every ordering of xs (Heap's algorithm). fn must not
// keep the slice.
func permute(xs []int64, fn func([]int64) error) error {
	a := slices.Clone(xs)
	c := make([]int, len(a))
	if err := fn(a); err != nil {
		return err
	}
	for i := 0; i < len(a); {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			if err := fn(a); err != nil {
				return err
			}
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
	return nil
}

// MaxSignal tries every ordering of phaseSet and returns the highest final
// signal together with the ordering that produced it.
func MaxSignal(image program.Image, cfg intcode.Config, phaseSet []int64, feedback bool, initial int64) (int64, []int64, error) {
	if len(phaseSet) == 0 {
		return 0, nil, vmerrors.ErrInvalidPhaseList
	}
	var (
		best       int64
		bestPhases []int64
	)
	err := permute(phaseSet, func(phases []int64) error {
		p, err := NewPipeline(image, cfg, phases, feedback)
		if err != nil {
			return err
		}
		signal, err := p.Run(initial)
		if err != nil {
			return fmt.Errorf("phases %v: %w", phases, err)
		}
		if bestPhases == nil || signal > best {
			best = signal
			bestPhases = slices.Clone(phases)
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	return best, bestPhases, nil
}
