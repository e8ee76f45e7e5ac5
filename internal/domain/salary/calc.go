package salary

// Compute derives the gross, tax and net figures from the salary components.
// Gross is basic plus allowances, tax is the percentage of gross, net is gross
// less tax and deductions.
func Compute(basic, allowances, deductions, taxPercent float64) (gross, tax, net float64) {
	gross = basic + allowances
	tax = gross * taxPercent / 100
	net = gross - tax - deductions
	return gross, tax, net
}
