package handlers

import (
	"fmt"
	"strconv"

	"github.com/asaskevich/govalidator"
)

// parseRecipeID parses a recipe ID query value. Only plain decimal digits
// are accepted so the value can be placed in the upstream path as-is.
func parseRecipeID(param string) (uint64, error) {
	if !govalidator.IsNumeric(param) {
		return 0, fmt.Errorf("recipe ID must be numeric: %q", param)
	}
	return strconv.ParseUint(param, 10, 64)
}
