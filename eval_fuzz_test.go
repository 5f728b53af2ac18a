package calc_test

import (
	"math"
	"testing"

	calc "github.com/BlazingHotCode/gocalc"
)

func FuzzEvaluate(f *testing.F) {
	f.Add("2*pi+sqrt(4)")
	f.Add("2^3^2")
	f.Add("1/0")
	f.Add("sqrt(-1)")
	f.Add("max(1,2,3,2)")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calc.Evaluate(s)
		if err != nil {
			return
		}
		b, err := calc.Evaluate(s)
		if err != nil {
			t.Errorf("second evaluation of %q failed: %v", s, err)
		}
		if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
			t.Errorf("evaluating %q twice: %v then %v", s, a, b)
		}
	})
}
