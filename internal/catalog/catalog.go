package catalog

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Tariff is a purchasable plan. Immutable for the process lifetime.
type Tariff struct {
	ID           int      `yaml:"id"`
	Name         string   `yaml:"name"`
	Price        float64  `yaml:"price"`
	DurationDays int      `yaml:"duration_days"`
	DeviceCount  int      `yaml:"device_count"`
	Description  string   `yaml:"description"`
	Countries    []string `yaml:"countries"`
}

// FAQItem is a single question/answer entry.
type FAQItem struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// PaymentMethod describes one way to pay and the instruction shown for it.
type PaymentMethod struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Instruction string `yaml:"instruction"`
}

// Catalog is the static set of tariffs, FAQ entries and payment methods,
// loaded once at process start.
type Catalog struct {
	Tariffs        []Tariff        `yaml:"tariffs"`
	FAQ            []FAQItem       `yaml:"faq"`
	PaymentMethods []PaymentMethod `yaml:"payment_methods"`
}

// Load returns the built-in catalog, overridden by the YAML file at path
// when path is non-empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		c := defaultCatalog
		return &c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog file")
	}
	if len(c.Tariffs) == 0 {
		return nil, errors.New("catalog has no tariffs")
	}
	return &c, nil
}

// TariffByID looks up a tariff. ok is false for unknown ids.
func (c *Catalog) TariffByID(id int) (Tariff, bool) {
	for _, t := range c.Tariffs {
		if t.ID == id {
			return t, true
		}
	}
	return Tariff{}, false
}

// FAQItemByIndex looks up a FAQ entry. ok is false for out-of-range indexes.
func (c *Catalog) FAQItemByIndex(i int) (FAQItem, bool) {
	if i < 0 || i >= len(c.FAQ) {
		return FAQItem{}, false
	}
	return c.FAQ[i], true
}

// PaymentMethodByID looks up a payment method. ok is false for unknown ids.
func (c *Catalog) PaymentMethodByID(id string) (PaymentMethod, bool) {
	for _, m := range c.PaymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
