package ops

import (
	"github.com/roach88/cidemo/internal/calculator"
	"github.com/roach88/cidemo/internal/mathutil"
	"github.com/roach88/cidemo/internal/stringutil"
)

func init() {
	binary := func(name, desc string, f func(a, b float64) float64) *Operation {
		return &Operation{
			Name:        name,
			Description: desc,
			Params:      []Param{{"a", KindNumber}, {"b", KindNumber}},
			fn: func(args Args) (any, error) {
				return f(args.Number("a"), args.Number("b")), nil
			},
		}
	}
	text := func(name, desc string, f func(string) string) *Operation {
		return &Operation{
			Name:        name,
			Description: desc,
			Params:      []Param{{"s", KindString}},
			fn: func(args Args) (any, error) {
				return f(args.String("s")), nil
			},
		}
	}

	register(binary("math.add", "a + b", mathutil.Add))
	register(binary("math.subtract", "a - b", mathutil.Subtract))
	register(binary("math.multiply", "a * b", mathutil.Multiply))
	register(&Operation{
		Name:        "math.divide",
		Description: "a / b; fails when b is zero",
		Params:      []Param{{"a", KindNumber}, {"b", KindNumber}},
		fn: func(args Args) (any, error) {
			return nilOnError(mathutil.Divide(args.Number("a"), args.Number("b")))
		},
	})
	register(&Operation{
		Name:        "math.percentage",
		Description: "value / total * 100; fails when total is zero",
		Params:      []Param{{"value", KindNumber}, {"total", KindNumber}},
		fn: func(args Args) (any, error) {
			return nilOnError(mathutil.CalculatePercentage(args.Number("value"), args.Number("total")))
		},
	})

	register(text("text.capitalize", "upper-case the first character, lower-case the rest", stringutil.Capitalize))
	register(text("text.slugify", "lower-case, hyphen-delimited URL token", stringutil.Slugify))
	register(text("text.reverse", "reverse character order", stringutil.ReverseString))
	register(&Operation{
		Name:        "text.truncate",
		Description: "cut to max_length characters and append \"...\"",
		Params:      []Param{{"s", KindString}, {"max_length", KindInteger}},
		fn: func(args Args) (any, error) {
			return stringutil.Truncate(args.String("s"), args.Int("max_length")), nil
		},
	})

	register(&Operation{
		Name:        "calculator.evaluate",
		Description: "parse num1 and num2 as the calculator does and apply operation",
		Params:      []Param{{"operation", KindString}, {"num1", KindString}, {"num2", KindString}},
		fn: func(args Args) (any, error) {
			op, err := calculator.ParseOperation(args.String("operation"))
			if err != nil {
				return nil, err
			}
			return nilOnError(calculator.Evaluate(op, args.String("num1"), args.String("num2")))
		},
	})
}

// nilOnError drops the zero result that accompanies an error so callers
// never record a value for a failed call.
func nilOnError(v float64, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
