package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCatalog_Valid(t *testing.T) {
	doc := []byte(`{
		"items": [
			{"id": "Louvre", "name": "Louvre Museum", "category": "attraction",
			 "price": 20, "tags": ["museums"], "location": "Paris"}
		]
	}`)

	assert.NoError(t, ValidateCatalog(doc))
}

func TestValidateCatalog_EmptyItems(t *testing.T) {
	assert.NoError(t, ValidateCatalog([]byte(`{"items": []}`)))
}

func TestValidateCatalog_MissingRequiredField(t *testing.T) {
	doc := []byte(`{
		"items": [
			{"id": "Louvre", "category": "attraction", "price": 20}
		]
	}`)

	err := ValidateCatalog(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location")
}

func TestValidateCatalog_UnknownCategory(t *testing.T) {
	doc := []byte(`{
		"items": [
			{"id": "QE2", "category": "cruise", "price": 2000, "location": "Atlantic"}
		]
	}`)

	err := ValidateCatalog(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestValidateCatalog_NegativePrice(t *testing.T) {
	doc := []byte(`{
		"items": [
			{"id": "Louvre", "category": "attraction", "price": -5, "location": "Paris"}
		]
	}`)

	assert.Error(t, ValidateCatalog(doc))
}
