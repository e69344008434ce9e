package service

import (
	"bytes"
	"encoding/json"
	"math"
	"mime"
	"strconv"
	"strings"

	pkgerrors "codehunt/pkg/errors"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// MagicKeyword must appear in package.keywords for orders to be read.
const MagicKeyword = "Christmas 2024"

// ManifestOrder is one gift order from package.metadata.orders.
type ManifestOrder struct {
	Item     string
	Quantity uint32
}

func (o ManifestOrder) String() string {
	return o.Item + ": " + strconv.FormatUint(uint64(o.Quantity), 10)
}

type manifestDecoder func([]byte) (map[string]any, error)

var manifestDecoders = map[string]manifestDecoder{
	"application/toml":   decodeTOML,
	"application/yaml":   decodeYAML,
	"application/x-yaml": decodeYAML,
	"text/yaml":          decodeYAML,
	"application/json":   decodeJSON,
}

func decodeTOML(body []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeYAML(body []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeJSON(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseManifest decodes a Cargo manifest sent as TOML, YAML or JSON, checks
// its shape and returns the gift orders it carries.
func ParseManifest(contentType string, body []byte) ([]ManifestOrder, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.UnsupportedMediaType)
	}
	decode, ok := manifestDecoders[mediaType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.UnsupportedMediaType)
	}
	doc, err := decode(body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.InvalidManifest)
	}
	if err := validateManifest(doc); err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.InvalidManifest)
	}

	pkg, _ := doc["package"].(map[string]any)
	if !hasKeyword(pkg, MagicKeyword) {
		return nil, pkgerrors.New(pkgerrors.MagicKeywordMissing)
	}
	return readOrders(pkg), nil
}

func hasKeyword(pkg map[string]any, want string) bool {
	keywords, ok := pkg["keywords"].([]any)
	if !ok {
		return false
	}
	for _, k := range keywords {
		if k == want {
			return true
		}
	}
	return false
}

func readOrders(pkg map[string]any) []ManifestOrder {
	metadata, _ := pkg["metadata"].(map[string]any)
	list, _ := metadata["orders"].([]any)
	orders := make([]ManifestOrder, 0, len(list))
	for _, raw := range list {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		item, ok := entry["item"].(string)
		if !ok {
			continue
		}
		qty, ok := asInt(entry["quantity"])
		if !ok || qty < 0 || qty > math.MaxUint32 {
			continue
		}
		orders = append(orders, ManifestOrder{Item: item, Quantity: uint32(qty)})
	}
	return orders
}

// asInt accepts the integer types the three decoders produce.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isStringList(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if !isString(item) {
			return false
		}
	}
	return true
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64, json.Number:
		return true
	}
	return false
}

// inherited matches {workspace = true}.
func inherited(v any) bool {
	t, ok := v.(map[string]any)
	if !ok {
		return false
	}
	flag, ok := t["workspace"].(bool)
	return ok && flag
}

func oneOf(allowed ...string) func(any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

func either(checks ...func(any) bool) func(any) bool {
	return func(v any) bool {
		for _, check := range checks {
			if check(v) {
				return true
			}
		}
		return false
	}
}

var (
	validEdition  = oneOf("2015", "2018", "2021", "2024")
	validResolver = oneOf("1", "2", "3")

	// packageFields lists the checked package keys. Unknown keys are allowed.
	packageFields = map[string]func(any) bool{
		"name":          isString,
		"version":       either(isString, inherited),
		"edition":       either(validEdition, inherited),
		"rust-version":  either(isString, inherited),
		"resolver":      validResolver,
		"authors":       either(isStringList, inherited),
		"keywords":      either(isStringList, inherited),
		"categories":    either(isStringList, inherited),
		"description":   either(isString, inherited),
		"license":       either(isString, inherited),
		"license-file":  either(isString, inherited),
		"homepage":      either(isString, inherited),
		"repository":    either(isString, inherited),
		"documentation": either(isString, inherited),
		"readme":        either(isString, isBool, inherited),
		"publish":       either(isBool, isStringList, inherited),
		"build":         either(isString, isBool),
		"workspace":     isString,
		"links":         isString,
		"autobins":      isBool,
		"autoexamples":  isBool,
		"autotests":     isBool,
		"autobenches":   isBool,
	}

	profileFields = map[string]func(any) bool{
		"incremental":      isBool,
		"overflow-checks":  isBool,
		"debug-assertions": isBool,
		"rpath":            isBool,
		"opt-level":        either(isNumber, isString),
		"debug":            either(isBool, isNumber, isString),
		"lto":              either(isBool, isString),
		"strip":            either(isBool, isString),
		"codegen-units":    isNumber,
		"panic":            isString,
		"inherits":         isString,
	}

	dependencyTables = []string{"dependencies", "dev-dependencies", "build-dependencies"}
)

type invalidField string

func (f invalidField) Error() string { return "invalid manifest field " + string(f) }

func checkFields(prefix string, table map[string]any, fields map[string]func(any) bool) error {
	for key, check := range fields {
		v, ok := table[key]
		if ok && !check(v) {
			return invalidField(prefix + key)
		}
	}
	return nil
}

func checkDependencies(prefix string, table map[string]any) error {
	for _, name := range dependencyTables {
		raw, ok := table[name]
		if !ok {
			continue
		}
		deps, ok := raw.(map[string]any)
		if !ok {
			return invalidField(prefix + name)
		}
		for dep, spec := range deps {
			switch s := spec.(type) {
			case string:
			case map[string]any:
				if v, ok := s["version"]; ok && !isString(v) {
					return invalidField(prefix + name + "." + dep + ".version")
				}
			default:
				return invalidField(prefix + name + "." + dep)
			}
		}
	}
	return nil
}

func validateManifest(doc map[string]any) error {
	if raw, ok := doc["package"]; ok {
		pkg, ok := raw.(map[string]any)
		if !ok {
			return invalidField("package")
		}
		if !isString(pkg["name"]) {
			return invalidField("package.name")
		}
		if err := checkFields("package.", pkg, packageFields); err != nil {
			return err
		}
	}
	if raw, ok := doc["workspace"]; ok {
		ws, ok := raw.(map[string]any)
		if !ok {
			return invalidField("workspace")
		}
		if v, ok := ws["resolver"]; ok && !validResolver(v) {
			return invalidField("workspace.resolver")
		}
		for _, key := range []string{"members", "exclude", "default-members"} {
			if v, ok := ws[key]; ok && !isStringList(v) {
				return invalidField("workspace." + key)
			}
		}
		if err := checkDependencies("workspace.", ws); err != nil {
			return err
		}
	}
	if raw, ok := doc["profile"]; ok {
		profiles, ok := raw.(map[string]any)
		if !ok {
			return invalidField("profile")
		}
		for name, p := range profiles {
			profile, ok := p.(map[string]any)
			if !ok {
				return invalidField("profile." + name)
			}
			if err := checkFields("profile."+name+".", profile, profileFields); err != nil {
				return err
			}
		}
	}
	if err := checkDependencies("", doc); err != nil {
		return err
	}
	if raw, ok := doc["target"]; ok {
		targets, ok := raw.(map[string]any)
		if !ok {
			return invalidField("target")
		}
		for name, t := range targets {
			target, ok := t.(map[string]any)
			if !ok {
				return invalidField("target." + name)
			}
			if err := checkDependencies("target."+name+".", target); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatOrders renders one "item: quantity" line per order.
func FormatOrders(orders []ManifestOrder) string {
	lines := make([]string, len(orders))
	for i, o := range orders {
		lines[i] = o.String()
	}
	return strings.Join(lines, "\n")
}
