package diagnosis

// Misconception defines a known subtraction misconception pattern.
type Misconception struct {
	ID          string
	Label       string
	Description string
	Examples    []string
}

var seedMisconceptions = []Misconception{
	{
		ID:          "sub-no-borrow",
		Label:       "Forgot to borrow",
		Description: "Subtracts the smaller ones digit from the larger instead of borrowing a ten; e.g., 13 - 5 = 12",
		Examples:    []string{"13 - 5 = 12", "15 - 8 = 13"},
	},
	{
		ID:          "sub-sign-confusion",
		Label:       "Sign confusion",
		Description: "Adds the numbers instead of subtracting them",
		Examples:    []string{"9 - 4 = 13", "12 - 3 = 15"},
	},
	{
		ID:          "sub-count-back",
		Label:       "Counting back error",
		Description: "Counts back from the first number but includes the starting number or skips one",
		Examples:    []string{"12 - 5 = 8", "9 - 3 = 5"},
	},
	{
		ID:          "sub-operand-echo",
		Label:       "Operand echo",
		Description: "Writes one of the operands, or a digit of one, instead of the difference",
		Examples:    []string{"12 - 7 = 7", "16 - 9 = 6"},
	},
	{
		ID:          "sub-fact-recall",
		Label:       "Fact recall gap",
		Description: "Has not memorised the subtraction fact and guesses a nearby number",
		Examples:    []string{"15 - 8 = 6", "17 - 9 = 9"},
	},
}

var registry map[string]*Misconception

func init() {
	registry = make(map[string]*Misconception, len(seedMisconceptions))
	for i := range seedMisconceptions {
		m := &seedMisconceptions[i]
		registry[m.ID] = m
	}
}

// GetMisconception returns a misconception by ID, or nil if not found.
func GetMisconception(id string) *Misconception {
	return registry[id]
}

// AllMisconceptions returns every misconception in the taxonomy, in
// authored order.
func AllMisconceptions() []*Misconception {
	result := make([]*Misconception, 0, len(seedMisconceptions))
	for i := range seedMisconceptions {
		result = append(result, &seedMisconceptions[i])
	}
	return result
}
