package match

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

var idType = reflect.TypeOf(ID(""))

// DecodeHook converts any scalar headed for an ID field with ParseID. It is
// meant for mapstructure decoders and viper.Unmarshal.
func DecodeHook() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != idType {
			return data, nil
		}
		return ParseID(data), nil
	}
}

func newDecoder(result any) (*mapstructure.Decoder, error) {
	return mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       DecodeHook(),
		WeaklyTypedInput: true,
		Result:           result,
	})
}

// DecodeProfile decodes a loosely typed map into a Profile.
func DecodeProfile(raw any) (*Profile, error) {
	var profile Profile
	decoder, err := newDecoder(&profile)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, nil
}

// DecodeJobs decodes loosely typed records into jobs.
func DecodeJobs(items []any) ([]*Job, error) {
	jobs := make([]*Job, 0, len(items))
	decoder, err := newDecoder(&jobs)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}
