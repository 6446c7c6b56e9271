package schema

// Schema is a map of configuration keys to their expected types.
type Schema map[string]Type

// FromKeys builds the canonical option schema: every key is a bool.
func FromKeys(keys ...string) Schema {
	s := make(Schema, len(keys))
	for _, key := range keys {
		s[key] = Bool()
	}
	return s
}

// Validate checks the present keys of data against the schema. Keys
// missing from data are fine (the panel falls back to defaults); keys
// missing from the schema are rejected so typos in config files
// surface instead of silently doing nothing.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error

	for key, value := range data {
		keyType, known := schema[key]
		if !known {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: "not a declared option",
				Value:  value,
			})
			continue
		}
		if err := keyType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
