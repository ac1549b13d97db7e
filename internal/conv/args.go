package conv

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Decode coerces in into the value pointed to by outPtr.
//
// Values already assignable to the destination are copied directly; anything
// else takes a JSON round trip, which covers the map[string]interface{}
// arguments MCP clients send. A nil input leaves the destination untouched.
func Decode(in any, outPtr any) error {
	v := reflect.ValueOf(outPtr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("conv.Decode: expected non-nil pointer, got %T", outPtr)
	}
	if in == nil {
		return nil
	}
	inVal := reflect.ValueOf(in)
	if inVal.Type().AssignableTo(v.Elem().Type()) {
		v.Elem().Set(inVal)
		return nil
	}
	if inVal.Type().AssignableTo(v.Type()) && !inVal.IsNil() {
		v.Elem().Set(inVal.Elem())
		return nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("conv.Decode: %w", err)
	}
	if err := json.Unmarshal(data, outPtr); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
