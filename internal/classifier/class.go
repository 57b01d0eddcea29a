package classifier

// Class is the finance configuration of an order, derived from which of
// the three payment instruments carry a non-zero amount.
type Class string

const (
	ClassA Class = "CLASE A" // down payment only
	ClassB Class = "CLASE B" // down payment + trade-in
	ClassC Class = "CLASE C" // down payment + bank credit
	ClassD Class = "CLASE D" // bank credit only
	ClassE Class = "CLASE E" // all three instruments
	ClassX Class = "CLASE X" // unclassifiable
)

// Classify derives the class from the three payment amounts. Combinations
// not covered by the table (trade-in without a down payment) fall to
// ClassX, the same bucket as the all-zero case.
func Classify(downPayment, tradeIn, bankCredit float64) Class {
	hasDown := downPayment != 0
	hasTrade := tradeIn != 0
	hasCredit := bankCredit != 0

	switch {
	case !hasDown && !hasTrade && !hasCredit:
		return ClassX
	case hasDown && hasTrade && hasCredit:
		return ClassE
	case hasDown && !hasTrade && !hasCredit:
		return ClassA
	case hasDown && hasTrade && !hasCredit:
		return ClassB
	case hasDown && !hasTrade && hasCredit:
		return ClassC
	case !hasDown && !hasTrade && hasCredit:
		return ClassD
	default:
		return ClassX
	}
}
