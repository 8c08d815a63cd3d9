package interpreter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/exprlang/internal/config"
	"github.com/funvibe/exprlang/internal/functions"
	"github.com/funvibe/exprlang/internal/planner"
	"github.com/funvibe/exprlang/internal/types"
)

// Evaluator runs a planner.Program against an Activation and a function
// registry (§4.4). It is immutable after construction and safe for
// concurrent use by any number of parallel Eval calls (§5 "Shared
// state") — each call builds its own frame.
type Evaluator struct {
	registry       *functions.Registry
	structs        StructBuilder
	iterationBudget int
	stackDepth      int
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithIterationBudget overrides config.DefaultIterationBudget.
func WithIterationBudget(n int) Option { return func(e *Evaluator) { e.iterationBudget = n } }

// WithStackDepth overrides config.DefaultStackDepth.
func WithStackDepth(n int) Option { return func(e *Evaluator) { e.stackDepth = n } }

// WithStructBuilder supplies the host-struct constructor MakeStruct needs
// (internal/hoststruct); programs with no struct literals can omit it.
func WithStructBuilder(b StructBuilder) Option { return func(e *Evaluator) { e.structs = b } }

// NewEvaluator builds an Evaluator bound to a function registry.
func NewEvaluator(registry *functions.Registry, opts ...Option) *Evaluator {
	e := &Evaluator{
		registry:        registry,
		iterationBudget: config.DefaultIterationBudget,
		stackDepth:      config.DefaultStackDepth,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Result is the outcome of one evaluation: the produced value (always
// non-nil on success, including when it is itself an error or unknown
// value per §3.1/§7.3) plus a correlation id for host-side log
// correlation across repeated evaluations of the same Program
// (SPEC_FULL.md §B).
type Result struct {
	Value types.Value
	EvalID string
}

// Eval runs prog to completion against act (§4.4 "Execution loop"). The
// returned error is non-nil only for §7 item 4 "internal invariants" —
// conditions that must never be reachable from a well-typed, correctly
// planned program. Every other failure (division by zero, missing map
// key, exhausted iteration budget, overfull stack, and cooperative
// cancellation via ctx, §5) is reported as an in-band *types.ErrorValue
// inside Result.Value, per §7.3.
func (e *Evaluator) Eval(ctx context.Context, prog *planner.Program, act Activation) (res Result, err error) {
	res.EvalID = uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(errInternal); ok {
				err = fmt.Errorf("interpreter: internal invariant violated: %w", ie)
				return
			}
			panic(r)
		}
	}()

	fr := newFrame(prog.NumSlots)
	iterUsed := 0

	for fr.ip < len(prog.Steps) {
		select {
		case <-ctx.Done():
			res.Value = types.NewError(prog.Steps[fr.ip].ID, "evaluation cancelled")
			return res, nil
		default:
		}

		s := prog.Steps[fr.ip]
		jumped := e.execStep(fr, s, act, &iterUsed)

		if len(fr.stack) > e.stackDepth {
			res.Value = types.NewError(s.ID, "stack depth limit exceeded")
			return res, nil
		}

		if !jumped {
			fr.ip++
		}
	}

	if len(fr.stack) != 1 {
		panic(errInternal(fmt.Sprintf("program terminated with %d values on the stack, want 1", len(fr.stack))))
	}
	res.Value = fr.pop()
	return res, nil
}

// execStep runs one step's effect and reports whether it moved the
// cursor itself (a jump), in which case the caller must not also
// advance ip.
func (e *Evaluator) execStep(fr *frame, s planner.Step, act Activation, iterUsed *int) bool {
	switch s.Op {
	case planner.OpPushConst:
		fr.push(s.Const)
		return false

	case planner.OpResolve:
		fr.push(e.resolve(act, s))
		return false

	case planner.OpSelect:
		fr.push(execSelect(fr.pop(), s))
		return false

	case planner.OpCall:
		fr.push(e.execCall(fr, s))
		return false

	case planner.OpCondJump:
		return e.execCondJump(fr, s)

	case planner.OpPropagateJump:
		return e.execPropagateJump(fr, s)

	case planner.OpJump:
		fr.ip += s.Offset + 1
		return true

	case planner.OpAndCombine:
		right, left := fr.pop(), fr.pop()
		fr.push(types.CombineAnd(left, right))
		return false

	case planner.OpOrCombine:
		right, left := fr.pop(), fr.pop()
		fr.push(types.CombineOr(left, right))
		return false

	case planner.OpMakeList:
		fr.push(execMakeList(fr, s))
		return false

	case planner.OpMakeMap:
		fr.push(execMakeMap(fr, s))
		return false

	case planner.OpMakeStruct:
		fr.push(e.execMakeStruct(fr, s))
		return false

	case planner.OpCheckInit:
		return e.execCheckInit(fr, s)

	case planner.OpLoadSlot:
		fr.push(mustValue(fr.slots[s.Slot]))
		return false

	case planner.OpAssignSlot:
		fr.slots[s.Slot] = fr.peek()
		return false

	case planner.OpAssignSlotAndPop:
		fr.slots[s.Slot] = fr.pop()
		return false

	case planner.OpClearSlot:
		fr.slots[s.Slot] = nil
		return false

	case planner.OpComprehensionNext:
		return e.execComprehensionNext(fr, s, iterUsed)
	}
	panic(errInternal(fmt.Sprintf("unhandled opcode %s", s.Op)))
}

// resolve implements the Resolve opcode (§4.4 "activation lookup; missing
// -> unknown or error per mode"): a PartialActivation that flags the name
// as a deliberately-unresolved attribute pattern yields an UnknownValue;
// any other miss is a plain error value.
func (e *Evaluator) resolve(act Activation, s planner.Step) types.Value {
	if v, ok := act.Resolve(s.Name); ok {
		return v
	}
	if pa, ok := act.(PartialActivation); ok && pa.IsUnknownAttribute(s.Name) {
		return &types.UnknownValue{Patterns: types.NewAttributeSet(types.AttributePattern(s.Name))}
	}
	return types.NewError(s.ID, "no such attribute: %s", s.Name)
}

func mustValue(raw interface{}) types.Value {
	v, ok := raw.(types.Value)
	if !ok {
		panic(errInternal("slot read before assignment"))
	}
	return v
}
