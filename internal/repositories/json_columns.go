package repositories

import (
	"database/sql"
	"encoding/json"
	"strings"

	"societyBack/internal/models"
)

// decodeStrings reads a JSON array column. NULL and empty values become an
// empty slice so the API never emits null lists.
func decodeStrings(col sql.NullString) ([]string, error) {
	out := []string{}
	if !col.Valid || strings.TrimSpace(col.String) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(col.String), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func decodeImages(col sql.NullString) ([]models.PortfolioImage, error) {
	out := []models.PortfolioImage{}
	if !col.Valid || strings.TrimSpace(col.String) == "" {
		return out, nil
	}
	var images []models.PortfolioImage
	if err := json.Unmarshal([]byte(col.String), &images); err != nil {
		return nil, err
	}
	for _, img := range images {
		if strings.TrimSpace(img.URL) != "" {
			out = append(out, img)
		}
	}
	return out, nil
}

func encodeStrings(values []string) (string, error) {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	data, err := json.Marshal(cleaned)
	return string(data), err
}
