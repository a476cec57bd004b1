package diagnosis

// TimeoutClassifier flags turns where the countdown ran out.
type TimeoutClassifier struct{}

func (c *TimeoutClassifier) Name() string { return "timeout" }

func (c *TimeoutClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.TimedOut {
		return CategoryTimeout, 1.0
	}
	return "", 0
}

// ForgotBorrowClassifier flags answers built by subtracting the smaller
// digit from the larger in each column, e.g. 13 - 5 = 12.
type ForgotBorrowClassifier struct{}

func (c *ForgotBorrowClassifier) Name() string { return "forgot-borrow" }

func (c *ForgotBorrowClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	p := input.Problem
	if !p.NeedsBorrow() {
		return "", 0
	}
	if given := input.givenValue(); given >= 0 && given == columnDifference(p.A, p.B) {
		return CategoryForgotBorrow, 0.95
	}
	return "", 0
}

// columnDifference subtracts digit by digit without regrouping.
func columnDifference(a, b int) int {
	result, place := 0, 1
	for a > 0 || b > 0 {
		da, db := a%10, b%10
		d := da - db
		if d < 0 {
			d = -d
		}
		result += d * place
		place *= 10
		a /= 10
		b /= 10
	}
	return result
}

// AddedInsteadClassifier flags answers equal to the sum of the operands.
type AddedInsteadClassifier struct{}

func (c *AddedInsteadClassifier) Name() string { return "added-instead" }

func (c *AddedInsteadClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	p := input.Problem
	if given := input.givenValue(); given >= 0 && given == p.A+p.B {
		return CategoryAddedInstead, 0.9
	}
	return "", 0
}

// OffByOneClassifier flags answers one away from correct, the usual
// result of miscounting back on fingers.
type OffByOneClassifier struct{}

func (c *OffByOneClassifier) Name() string { return "off-by-one" }

func (c *OffByOneClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	given := input.givenValue()
	if given < 0 {
		return "", 0
	}
	if diff := given - input.Problem.Answer; diff == 1 || diff == -1 {
		return CategoryOffByOne, 0.7
	}
	return "", 0
}
