package calculator_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive
	"go.uber.org/mock/gomock"

	"github.com/toejough/expecto"
	calculator "github.com/toejough/expecto/UAT/01-calculator"
	. "github.com/toejough/expecto/match" //nolint:revive
)

//go:generate go run ../../expgen calculator.Calculator

func TestSum_AddsEachValue(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, calc := NewCalculatorMock(t)
	calc.ExpectReset()
	calc.ExpectAdd(0, 2).WillOnce(expecto.Return(2))
	calc.ExpectAdd(2, 3).WillOnce(expecto.Return(5))

	g.Expect(calculator.Sum(calc, 2, 3)).To(Equal(5))
}

func TestAverage_InOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, calc := NewCalculatorMock(t)

	ordered := handle.Env().EnterNewSequence()
	calc.ExpectReset().WillOnce(expecto.Return())
	calc.ExpectAdd(0, 4).WillOnce(expecto.Return(4))
	calc.ExpectAdd(4, 8).WillOnce(expecto.Return(12))
	calc.ExpectDivide(12, 2).WillOnce(expecto.Return(6, nil))
	ordered.Close()

	g.Expect(calculator.Average(calc, 4, 8)).To(Equal(6))
}

func TestAverage_PassesErrorsThrough(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	errOverflow := errors.New("overflow")

	_, calc := NewCalculatorMock(t)
	calc.ExpectReset().WillOnce(expecto.Return())
	calc.ExpectAdd().Times(expecto.AnyTimes()).WillRepeatedly(expecto.Invoke(func(args []any) []any {
		return []any{args[0].(int) + args[1].(int)}
	}))
	calc.ExpectDivide(Any(), Gt(0)).WillOnce(expecto.Return(0, errOverflow))

	_, err := calculator.Average(calc, 1, 2, 3)
	g.Expect(err).To(MatchError(errOverflow))
}

func TestDefault_AnswersCallsWithoutAction(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, calc := NewCalculatorMock(t)
	calc.Default = realCalculator{}

	calc.ExpectReset()
	calc.ExpectAdd().Times(expecto.Between(1, 5))
	calc.ExpectDivide(9, 3)

	g.Expect(calculator.Average(calc, 2, 3, 4)).To(Equal(3))
}

func TestReset_NeedsNoActionOrDefault(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, calc := NewCalculatorMock(&recorder{})
	calc.ExpectReset()

	g.Expect(failure(calc.Reset)).To(BeNil())
	g.Expect(failure(handle.Checkpoint)).To(BeNil())
}

func TestExpect_WrongNumberOfArguments(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recorder{}
	_, calc := NewCalculatorMock(reporter)

	err := failure(func() { calc.ExpectAdd(1) })

	g.Expect(err).To(MatchError(expecto.ErrArity))
	g.Expect(reporter.messages).To(ConsistOf(ContainSubstring("Calculator.Add takes 2 arguments, got matchers for 1")))
}

func TestMatchers_FromOtherLibraries(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, calc := NewCalculatorMock(t)
	calc.ExpectAdd(gomock.Any(), gomock.Eq(5)).WillOnce(expecto.Return(7))
	calc.ExpectAdd(BeNumerically(">", 100), Any()).WillOnce(expecto.Return(0))

	g.Expect(calc.Add(2, 5)).To(Equal(7))
	g.Expect(calc.Add(101, 1)).To(Equal(0))
}

func TestConcurrentCalls(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	const callers = 8

	_, calc := NewCalculatorMock(t)
	calc.ExpectAdd(Any(), 1).Times(expecto.Exactly(callers)).WillRepeatedly(expecto.Invoke(func(args []any) []any {
		return []any{args[0].(int) + 1}
	}))

	var wg sync.WaitGroup

	results := make([]int, callers)

	for i := range callers {
		wg.Go(func() {
			results[i] = calc.Add(i, 1)
		})
	}

	wg.Wait()

	for i, result := range results {
		g.Expect(result).To(Equal(i + 1))
	}
}

func TestScenarioA_SecondCallIsAlreadyDone(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, calc := NewCalculatorMock(&recorder{})
	calc.ExpectAdd().Times(expecto.Exactly(1)).WillRepeatedly(expecto.Return(3))

	g.Expect(calc.Add(1, 2)).To(Equal(3))

	err := failure(func() { calc.Add(1, 2) })

	g.Expect(err).To(MatchError(expecto.ErrNoMatch))
	g.Expect(err.Error()).To(ContainSubstring("already done (1 calls, expected [1, 1])"))
}

func TestScenarioB_PredecessorMustBeSatisfied(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, calc := NewCalculatorMock(&recorder{})
	seq := expecto.NewSequence()
	calc.ExpectAdd(1, 1).InSequence(seq).Description("first").WillOnce(expecto.Return(2))
	calc.ExpectAdd(2, 2).InSequence(seq).Description("second").WillOnce(expecto.Return(4))

	err := failure(func() { calc.Add(2, 2) })

	g.Expect(err).To(MatchError(expecto.ErrNoMatch))
	g.Expect(err.Error()).To(ContainSubstring("not active"))
	g.Expect(err.Error()).To(ContainSubstring("unsatisfied predecessors:"))
	g.Expect(err.Error()).To(ContainSubstring("- Calculator.Add(Eq(1), Eq(1)) first"))
}

func TestScenarioC_OptionalExpectationNeverCalled(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	handle, calc := NewCalculatorMock(&recorder{})
	calc.ExpectReset().Times(expecto.AtMost(1)).Description("may reset")

	g.Expect(failure(handle.Checkpoint)).To(BeNil())
}

func TestScenarioD_RequiredExpectationNeverCalled(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recorder{}
	handle, calc := NewCalculatorMock(reporter)
	calc.ExpectDivide().Times(expecto.AtLeast(1)).Description("divides")

	err := failure(handle.Checkpoint)

	var unsatisfied *expecto.UnsatisfiedError

	g.Expect(errors.As(err, &unsatisfied)).To(BeTrue())
	g.Expect(unsatisfied.Expectations).To(Equal([]string{"Calculator.Divide(_, _) divides"}))
	g.Expect(reporter.messages).To(ConsistOf(ContainSubstring("mocked object 'CalculatorMock'")))
}

// failure runs fn and returns the error it failed with, or nil if it returned normally.
func failure(fn func()) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			var ok bool

			err, ok = recovered.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", recovered)
			}
		}
	}()

	fn()

	return nil
}

type realCalculator struct{}

func (realCalculator) Add(a, b int) int { return a + b }

func (realCalculator) Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, calculator.ErrEmpty
	}

	return a / b, nil
}

func (realCalculator) Reset() {}

// recorder collects failures instead of stopping the test.
type recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *recorder) Fatalf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *recorder) Helper() {}
