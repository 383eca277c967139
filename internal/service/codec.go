package service

import "encoding/json"

// jsonCodec lets Connect carry the plain message structs in this package.
// It registers under the name "json", so requests use application/json.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
