package compare

import (
	"encoding/json"

	"github.com/karimaz/switchcalc/internal/domain"
)

// JSONFormatter renders the comparison result as JSON.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output.
func (jf *JSONFormatter) Format(result *domain.ComparisonResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
