package vouchers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"etik/pkg/etikapi"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidCampaign = errors.New("invalid voucher campaign")

const maxPercentage = 100

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(campaignRules, CampaignRequest{})
	return v
}

// campaignRules holds the cross-field checks tags cannot express
func campaignRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(CampaignRequest)

	if req.DiscountType == etikapi.DiscountTypePercentage && req.DiscountValue > maxPercentage {
		sl.ReportError(req.DiscountValue, "discount_value", "DiscountValue", "max_percentage", "100")
	}
	if req.DiscountType == etikapi.DiscountTypeFixed && req.MaxDiscount != nil {
		sl.ReportError(req.MaxDiscount, "max_discount", "MaxDiscount", "percentage_only", "")
	}
	if req.TotalUsageLimit != nil && req.PerCustomerLimit != nil && *req.PerCustomerLimit > *req.TotalUsageLimit {
		sl.ReportError(req.PerCustomerLimit, "per_customer_limit", "PerCustomerLimit", "ltefield", "total_usage_limit")
	}
}

// describe turns validator errors into field messages for the response
func describe(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			out = append(out, field+" is required")
		case "gtfield":
			out = append(out, field+" must be after start_time")
		case "max_percentage":
			out = append(out, field+" cannot exceed 100 for a percentage discount")
		case "percentage_only":
			out = append(out, field+" only applies to percentage discounts")
		case "ltefield":
			out = append(out, field+" cannot exceed "+fe.Param())
		case "unique":
			out = append(out, field+" contains duplicates")
		default:
			out = append(out, fmt.Sprintf("%s failed %s", field, strings.TrimSpace(fe.Tag()+" "+fe.Param())))
		}
	}
	return out
}
