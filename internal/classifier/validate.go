package classifier

import (
	"fmt"
	"strings"
)

// Validation is the outcome of checking an observation code against the
// matrix. Valid is nil when the check is indeterminate (missing matrix,
// unresolved zone or unconfigured class/zone pair).
type Validation struct {
	Valid   *bool
	Message string
	Icon    string
}

func validation(valid bool, message, icon string) Validation {
	return Validation{Valid: &valid, Message: message, Icon: icon}
}

func indeterminate(message string) Validation {
	return Validation{Message: message, Icon: "⚠️"}
}

// ValidateCode checks whether the observation code recorded on an order is
// among the codes the matrix allows for its (class, zone) pair.
func ValidateCode(code string, class Class, zone ZoneResult, matrix CodeMatrix) Validation {
	if !matrix.Loaded() {
		return indeterminate("Matriz no cargada")
	}
	if strings.TrimSpace(code) == "" {
		return validation(false, "Sin código", "❌")
	}
	if !zone.Resolved() {
		return indeterminate("Zona no determinada")
	}
	rule, ok := matrix.Rule(class, zone.Zone)
	if !ok {
		return indeterminate(fmt.Sprintf("Sin config para %s - Zona %d", class, zone.Zone))
	}
	if rule.Allows(code) {
		return validation(true, "Código válido", "✅")
	}
	return validation(false, "Código no válido para esta zona", "❌")
}
