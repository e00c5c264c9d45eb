package checkout

import (
	"strings"

	"github.com/google/uuid"
)

// NewOrderCode mints a customer-facing order code. A uuid fragment
// keeps the code short while staying collision-resistant; the order
// table's unique constraint backstops the rest.
func NewOrderCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(id[:8])
}
