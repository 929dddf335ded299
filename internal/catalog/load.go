package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/Ahmad-Arslan-10/Steakaway/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:embed menu.json
var defaultMenu []byte

// Source JSON shape: an ordered list of categories, each with products that
// may carry a nested customizations block. Options come in two forms, a bare
// string label or a {name, price} object.

type sourceCategory struct {
	CategoryName string          `json:"categoryName"`
	Products     []sourceProduct `json:"products"`
}

type sourceProduct struct {
	ID             flexibleID            `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          decimal.Decimal       `json:"price"`
	Image          string                `json:"image"`
	Customizations *sourceCustomizations `json:"customizations"`
}

type sourceCustomizations struct {
	Customizations []sourceGroup `json:"customizations"`
}

type sourceGroup struct {
	Name    string         `json:"name"`
	Kind    string         `json:"kind"`
	Options []sourceOption `json:"options"`
}

type sourceOption struct {
	Label string
	Price decimal.Decimal
}

func (o *sourceOption) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		o.Label = label
		o.Price = decimal.Zero
		return nil
	}
	var obj struct {
		Name  string          `json:"name"`
		Price decimal.Decimal `json:"price"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Label = obj.Name
	o.Price = obj.Price
	return nil
}

// flexibleID accepts both numeric and string product ids.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// Load decodes and validates a catalog source. No partial catalog is ever
// returned: any malformed product or group fails the whole load.
func Load(r io.Reader) (*Catalog, error) {
	var source []sourceCategory
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&source); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalog, err, "decode catalog source")
	}

	catalog := &Catalog{byID: make(map[string]Product)}
	for _, category := range source {
		built := Category{Name: category.CategoryName}
		for _, product := range category.Products {
			p, err := buildProduct(product)
			if err != nil {
				return nil, err
			}
			if _, exists := catalog.byID[p.ID]; exists {
				return nil, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("duplicate product id %q", p.ID))
			}
			catalog.byID[p.ID] = p
			built.Products = append(built.Products, p)
		}
		catalog.categories = append(catalog.categories, built)
	}
	return catalog, nil
}

// LoadFile loads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCatalog, err, "open catalog file")
	}
	defer f.Close()
	return Load(f)
}

// Default loads the embedded menu shipped with the binary.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultMenu))
}

func buildProduct(source sourceProduct) (Product, error) {
	id := strings.TrimSpace(string(source.ID))
	if id == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("product %q has no id", source.Name))
	}
	if strings.TrimSpace(source.Name) == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("product %q has no name", id))
	}
	if source.Price.IsNegative() {
		return Product{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("product %q has a negative base price", source.Name))
	}

	product := Product{
		ID:          id,
		Name:        source.Name,
		Description: source.Description,
		BasePrice:   source.Price,
		Image:       source.Image,
	}

	if source.Customizations == nil {
		return product, nil
	}
	if len(source.Customizations.Customizations) == 0 {
		return Product{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("product %q declares customizations but has no groups", source.Name))
	}

	seen := make(map[string]struct{}, len(source.Customizations.Customizations))
	for _, group := range source.Customizations.Customizations {
		built, err := buildGroup(source.Name, group)
		if err != nil {
			return Product{}, err
		}
		if _, dup := seen[built.Name]; dup {
			return Product{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("product %q repeats group %q", source.Name, built.Name))
		}
		seen[built.Name] = struct{}{}
		product.Groups = append(product.Groups, built)
	}
	return product, nil
}

func buildGroup(productName string, source sourceGroup) (Group, error) {
	name := strings.TrimSpace(source.Name)
	if name == "" {
		return Group{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("product %q has a group without a name", productName))
	}

	kind, err := resolveKind(productName, name, source.Kind)
	if err != nil {
		return Group{}, err
	}

	group := Group{Name: name, Kind: kind}
	if kind == GroupSingleRequired && len(source.Options) == 0 {
		return Group{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("required group %q of product %q has no options", name, productName))
	}

	labels := make(map[string]struct{}, len(source.Options))
	for _, opt := range source.Options {
		label := strings.TrimSpace(opt.Label)
		if label == "" {
			return Group{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("group %q of product %q has an option without a label", name, productName))
		}
		if _, dup := labels[label]; dup {
			return Group{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("group %q of product %q repeats option %q", name, productName, label))
		}
		if opt.Price.IsNegative() {
			return Group{}, pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("option %q of group %q has a negative price", label, name))
		}
		labels[label] = struct{}{}
		group.Options = append(group.Options, Option{Label: label, Price: opt.Price})
	}
	return group, nil
}

func resolveKind(productName, groupName, raw string) (GroupKind, error) {
	switch GroupKind(strings.TrimSpace(raw)) {
	case GroupSingleRequired:
		return GroupSingleRequired, nil
	case GroupMultiOptional:
		return GroupMultiOptional, nil
	case "":
		// Legacy catalogs encode the kind in the group name.
		return KindFromName(groupName), nil
	}
	return "", pkgerrors.New(pkgerrors.CodeCatalog, fmt.Sprintf("group %q of product %q has unknown kind %q", groupName, productName, raw))
}
