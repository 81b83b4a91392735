// Package validation contrôle les saisies avant tout accès au stockage et
// produit des messages en français, rattachés au nom JSON du champ.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"vitalecosystem/models"
)

// Violations associe un champ (nom JSON) à son message d'erreur.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add conserve le premier message signalé pour un champ.
func (v Violations) Add(field, msg string) {
	if _, exists := v[field]; !exists {
		v[field] = msg
	}
}

// Err renvoie nil s'il n'y a aucune violation.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Error{Fields: v}
}

type Error struct {
	Fields Violations
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "données invalides: " + strings.Join(parts, "; ")
}

var (
	telClientRe = regexp.MustCompile(`^0\d{8,9}$`)
	telAgentRe  = regexp.MustCompile(`^0\d{9}$`)
	gpsRe       = regexp.MustCompile(`^(-?\d{1,3}\.\d{5}),\s*(-?\d{1,3}\.\d{5})$`)
)

var regimes = map[string]bool{
	"Forfait":        true,
	"Réel":           true,
	"Forfait & Réel": true,
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Une date vide est traitée comme absente pour la règle required.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(models.Date)
		if !ok || d.IsZero() {
			return nil
		}
		return d.Time
	}, models.Date{})

	mustRegister(v, "tel_client", func(fl validator.FieldLevel) bool {
		return telClientRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "tel_agent", func(fl validator.FieldLevel) bool {
		return telAgentRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "gps", func(fl validator.FieldLevel) bool {
		return validGPS(fl.Field().String())
	})
	mustRegister(v, "regime", func(fl validator.FieldLevel) bool {
		return regimes[fl.Field().String()]
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(models.Contract)
		if c.DateDebut.IsZero() || c.DateFin.IsZero() {
			return
		}
		if !c.DateFin.After(c.DateDebut) {
			sl.ReportError(c.DateFin, "date_fin", "DateFin", "after_debut", "")
		}
	}, models.Contract{})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

func validGPS(s string) bool {
	m := gpsRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return false
	}
	lat, lng := models.ParseNumber(m[1]), models.ParseNumber(m[2])
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// Struct valide s et renvoie un *Error, ou nil.
func (v *Validator) Struct(s any) error {
	out := Violations{}
	if err := v.Check("", s, out); err != nil {
		return err
	}
	return out.Err()
}

// Check valide s et ajoute les violations à out, chaque champ étant préfixé
// par prefix (par exemple "produits[2]."). L'erreur renvoyée ne concerne que
// les appels invalides.
func (v *Validator) Check(prefix string, s any, out Violations) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		out.Add(prefix+fe.Field(), message(fe))
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "champ obligatoire"
	case "gt":
		return fmt.Sprintf("doit être supérieur à %s", fe.Param())
	case "gte":
		return fmt.Sprintf("doit être supérieur ou égal à %s", fe.Param())
	case "max":
		return fmt.Sprintf("ne doit pas dépasser %s caractères", fe.Param())
	case "oneof":
		return "valeur attendue parmi: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "tel_client":
		return "numéro invalide: 0 suivi de 8 ou 9 chiffres"
	case "tel_agent":
		return "numéro invalide: 10 chiffres commençant par 0"
	case "gps":
		return "coordonnées invalides, format attendu: latitude,longitude avec 5 décimales"
	case "regime":
		return "régime attendu parmi: Forfait, Réel, Forfait & Réel"
	case "after_debut":
		return "la date de fin doit être postérieure à la date de début"
	}
	return "valeur invalide"
}
