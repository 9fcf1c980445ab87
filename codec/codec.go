// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package codec contains the payload codecs used to turn Go values into
// stored cache values and back.
package codec

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/absmach/kvcache/pkg/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrUnknownCodec indicates a codec name that is not supported.
var ErrUnknownCodec = errors.New("unknown codec")

// Codec encodes and decodes cache payloads.
type Codec interface {
	// Name returns the codec name used in configuration.
	Name() string

	// Marshal encodes v.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v, which must be a pointer.
	Unmarshal(data []byte, v any) error
}

var (
	// JSON encodes payloads as JSON. It is the default codec.
	JSON Codec = jsonCodec{}

	// MsgPack encodes payloads as MessagePack. Map keys are sorted.
	MsgPack Codec = msgpackCodec{}

	// CBOR encodes payloads as deterministic CBOR and decodes maps of
	// unknown type as map[string]any.
	CBOR Codec = newCBOR()
)

var codecs = map[string]Codec{
	JSON.Name():    JSON,
	MsgPack.Name(): MsgPack,
	CBOR.Name():    CBOR,
}

// Parse returns the codec registered under name. Empty name selects JSON.
func Parse(name string) (Codec, error) {
	if name == "" {
		return JSON, nil
	}
	c, ok := codecs[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrap(ErrUnknownCodec, errors.New(name))
	}

	return c, nil
}

type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type msgpackCodec struct{}

func (msgpackCodec) Name() string {
	return "msgpack"
}

// Members of sorted sets and lists are matched by their bytes, so equal
// values must always encode the same way.
func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func newCBOR() cborCodec {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return cborCodec{enc: enc, dec: dec}
}

func (cborCodec) Name() string {
	return "cbor"
}

func (cc cborCodec) Marshal(v any) ([]byte, error) {
	return cc.enc.Marshal(v)
}

func (cc cborCodec) Unmarshal(data []byte, v any) error {
	return cc.dec.Unmarshal(data, v)
}
