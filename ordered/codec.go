package ordered

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"

	errors2 "github.com/amp-labs/searchhistory/errors"
	"gopkg.in/yaml.v3"
)

var errNotMapping = errors.New("ordered: expected a mapping")

var (
	_ json.Marshaler   = (*Dict[string, int])(nil)
	_ json.Unmarshaler = (*Dict[string, int])(nil)
	_ yaml.Marshaler   = (*Dict[string, int])(nil)
	_ yaml.Unmarshaler = (*Dict[string, int])(nil)
)

// MarshalJSON writes the Dict as a JSON object whose members appear in the
// Dict's order. Keys must be strings, integers, or implement
// encoding.TextMarshaler.
func (d *Dict[K, V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range d.Seq() {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := keyToText(entry.Key)
		if err != nil {
			return nil, err
		}

		nameBytes, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}

		valueBytes, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding value for key %q: %w", name, err)
		}

		buf.Write(nameBytes)
		buf.WriteByte(':')
		buf.Write(valueBytes)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents of the Dict with the members of a JSON
// object, keeping the order they appear in. A repeated member keeps its first
// position and takes its last value. JSON null empties the Dict.
func (d *Dict[K, V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		d.Clear()

		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w, got %v", errNotMapping, tok)
	}

	fresh := New[K, V](0)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w, got member name %v", errNotMapping, tok)
		}

		key, err := keyFromText[K](name)
		if err != nil {
			return err
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding value for key %q: %w", name, err)
		}

		fresh.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	d.Clear()
	d.s = fresh.s

	return nil
}

// MarshalYAML writes the Dict as a YAML mapping in the Dict's order.
func (d *Dict[K, V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for key, value := range d.All() {
		var keyNode, valueNode yaml.Node

		if err := keyNode.Encode(key); err != nil {
			return nil, err
		}

		if err := valueNode.Encode(value); err != nil {
			return nil, fmt.Errorf("encoding value for key %v: %w", key, err)
		}

		node.Content = append(node.Content, &keyNode, &valueNode)
	}

	return node, nil
}

// UnmarshalYAML replaces the contents of the Dict with a YAML mapping,
// keeping document order. A null node empties the Dict. A key that appears
// twice is an ErrDuplicateKey, as it is for yaml.v3 map decoding, and the
// Dict is left unchanged.
func (d *Dict[K, V]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}

	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		d.Clear()

		return nil
	}

	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w at line %d", errNotMapping, value.Line)
	}

	fresh := New[K, V](len(value.Content) / 2) //nolint:mnd

	for i := 0; i+1 < len(value.Content); i += 2 {
		var (
			key K
			val V
		)

		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}

		if fresh.Contains(key) {
			return fmt.Errorf("%w: %v at line %d", errors2.ErrDuplicateKey, key, value.Content[i].Line)
		}

		if err := value.Content[i+1].Decode(&val); err != nil {
			return fmt.Errorf("decoding value for key %v: %w", key, err)
		}

		fresh.Set(key, val)
	}

	d.Clear()
	d.s = fresh.s

	return nil
}

func keyToText[K comparable](key K) (string, error) {
	if tm, ok := any(key).(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", err
		}

		return string(text), nil
	}

	rv := reflect.ValueOf(key)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	default:
		return "", fmt.Errorf("%w: %T", errors2.ErrUnsupportedKey, key)
	}
}

func keyFromText[K comparable](text string) (K, error) {
	var key K

	if tu, ok := any(&key).(encoding.TextUnmarshaler); ok {
		if err := tu.UnmarshalText([]byte(text)); err != nil {
			return key, err
		}

		return key, nil
	}

	rv := reflect.ValueOf(&key).Elem()

	switch rv.Kind() { //nolint:exhaustive
	case reflect.String:
		rv.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, rv.Type().Bits())
		if err != nil {
			return key, fmt.Errorf("%w: %q is not a %T", errors2.ErrUnsupportedKey, text, key)
		}

		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, rv.Type().Bits())
		if err != nil {
			return key, fmt.Errorf("%w: %q is not a %T", errors2.ErrUnsupportedKey, text, key)
		}

		rv.SetUint(n)
	default:
		return key, fmt.Errorf("%w: %T", errors2.ErrUnsupportedKey, key)
	}

	return key, nil
}
