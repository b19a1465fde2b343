package importer

import (
	"fmt"
	"strings"

	"bakery-pricing/internal/core/costing"
)

const promptTemplate = `Extract the ingredients from the following recipe text.
For each ingredient, identify:
1. name
2. category: "dry", "wet", or "additive".
   - dry: flour, sugar, salt, baking powder, spices.
   - wet: eggs, milk, water, oil, butter, extracts.
   - additive: optional mix-ins or variants like chocolate chips, nuts, dried fruit, sprinkles, frosting toppings.
3. recipeQuantity: the quantity used in the recipe as a string, keep fractions like "1/2".
4. recipeUnit: one of %s.
If you can estimate a standard grocery store purchase size for the item (for example 1 kg bags or 5 lb bags), include purchaseQuantity (string) and purchaseUnit.
If the purchase price is unknown, leave it 0.
Respond with JSON only, no prose, in the form {"ingredients": [...]}. Each element has the keys name, category, recipeQuantity, recipeUnit and optionally purchaseQuantity, purchaseUnit.

Recipe Text: %q`

// BuildPrompt 建立擷取食材的 prompt
func BuildPrompt(text string) string {
	units := costing.Units()
	codes := make([]string, len(units))
	for i, u := range units {
		codes[i] = string(u)
	}
	return fmt.Sprintf(promptTemplate, strings.Join(codes, ", "), text)
}
