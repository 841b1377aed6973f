package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createInput struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Stock       *int32   `json:"stock"       validate:"required"`
	Price       *float64 `json:"price"       validate:"required,min=1"`
}

type updateInput struct {
	Name  *string  `json:"name"`
	Stock *int32   `json:"stock"`
	Price *float64 `json:"price" validate:"omitempty,min=1"`
}

func Test_Validate_Create(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		expectedMsgs []string
	}{
		{
			name: "Success - all fields valid",
			body: `{"name":"Lamp","description":"Desk lamp","stock":0,"price":1}`,
		},
		{
			name:         "Error - empty name",
			body:         `{"name":"","description":"Desk lamp","stock":3,"price":10}`,
			expectedMsgs: []string{"name should not be empty"},
		},
		{
			name:         "Error - price below minimum",
			body:         `{"name":"Lamp","description":"Desk lamp","stock":3,"price":0.5}`,
			expectedMsgs: []string{"price must not be less than 1"},
		},
		{
			name: "Error - empty body reports every field in order",
			body: ``,
			expectedMsgs: []string{
				"name should not be empty",
				"description should not be empty",
				"stock should not be empty",
				"price should not be empty",
			},
		},
		{
			name:         "Error - stock is not an integer",
			body:         `{"name":"Lamp","description":"Desk lamp","stock":1.5,"price":10}`,
			expectedMsgs: []string{"stock must be an integer number"},
		},
		{
			name:         "Error - price is a string",
			body:         `{"name":"Lamp","description":"Desk lamp","stock":1,"price":"ten"}`,
			expectedMsgs: []string{"price must be a number conforming to the specified constraints"},
		},
		{
			name:         "Error - name is a number",
			body:         `{"name":42,"description":"Desk lamp","stock":1,"price":10}`,
			expectedMsgs: []string{"name must be a string"},
		},
		{
			name:         "Error - malformed json",
			body:         `{"name":`,
			expectedMsgs: []string{"invalid request body"},
		},
	}

	v := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			out, err := Validate[createInput](v, []byte(tc.body))
			// then
			if tc.expectedMsgs != nil {
				var vErr *Error
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tc.expectedMsgs, vErr.Messages)
				assert.Equal(t, tc.expectedMsgs[0], vErr.Error())
				assert.Nil(t, out)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, out)
			assert.Equal(t, "Lamp", out.Name)
			assert.Equal(t, int32(0), *out.Stock)
		})
	}
}

func Test_Validate_Update(t *testing.T) {
	v := New()

	t.Run("Success - absent fields stay nil", func(t *testing.T) {
		out, err := Validate[updateInput](v, []byte(`{"stock":7}`))

		require.NoError(t, err)
		assert.Nil(t, out.Name)
		assert.Nil(t, out.Price)
		require.NotNil(t, out.Stock)
		assert.Equal(t, int32(7), *out.Stock)
	})

	t.Run("Success - empty object", func(t *testing.T) {
		out, err := Validate[updateInput](v, []byte(`{}`))

		require.NoError(t, err)
		assert.Equal(t, &updateInput{}, out)
	})

	t.Run("Error - negative price", func(t *testing.T) {
		_, err := Validate[updateInput](v, []byte(`{"price":-1}`))

		var vErr *Error
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{"price must not be less than 1"}, vErr.Messages)
	})
}

func Test_Error_EmptyMessages(t *testing.T) {
	assert.Equal(t, "validation failed", (&Error{}).Error())
}
