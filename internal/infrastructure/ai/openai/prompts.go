package openai

import (
	"fmt"
	"strings"

	"github.com/eusilvaluiz/sabor-sem-limites-app/internal/domain/recipe"
)

const chatSystemPrompt = `You are Chef LéIA, a friendly culinary assistant specializing in ` +
	`gluten-free and lactose-free cooking, nutrition and healthy eating. ` +
	`Answer in the language the user writes in. Be warm, practical and concise. ` +
	`When suggesting ingredients, always respect gluten and lactose restrictions.`

const cannedChatReply = `Olá! Sou a Chef LéIA. No momento estou sem conexão com meu ` +
	`serviço de respostas, mas em breve poderei ajudar com suas dúvidas sobre ` +
	`alimentação sem glúten e sem lactose.`

const cannedRecipeReply = `No momento não consigo analisar esta receita. ` +
	`Tente novamente em instantes.`

// recipeSystemPrompt embeds the full recipe so each question is
// answered statelessly.
func recipeSystemPrompt(r *recipe.Recipe) string {
	var b strings.Builder
	b.WriteString(chatSystemPrompt)
	b.WriteString("\n\nYou are answering questions about this specific recipe:\n")
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	if r.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", r.Description)
	}
	fmt.Fprintf(&b, "Servings: %d\n", r.Servings)
	fmt.Fprintf(&b, "Difficulty: %s\n", r.Difficulty)
	fmt.Fprintf(&b, "Gluten free: %t\nLactose free: %t\n", r.GlutenFree, r.LactoseFree)
	fmt.Fprintf(&b, "Ingredients:\n%s\n", r.Ingredients)
	fmt.Fprintf(&b, "Instructions:\n%s\n", r.Instructions)
	return b.String()
}

func adjustServingsPrompt(r *recipe.Recipe, newServings int) string {
	return fmt.Sprintf(
		"Rescale the ingredient amounts of this recipe from %d to %d servings. "+
			"List the adjusted ingredients with their new quantities and note "+
			"any cooking time changes.",
		r.Servings, newServings,
	)
}

func substitutePrompt(r *recipe.Recipe, ingredients []string, reason string) string {
	return fmt.Sprintf(
		"Suggest substitutions for the following ingredients: %s. Reason: %s. "+
			"Every substitution must keep the recipe gluten free and lactose free "+
			"as declared, with equivalent measures.",
		strings.Join(ingredients, ", "), reason,
	)
}

func nutritionPrompt(r *recipe.Recipe) string {
	return fmt.Sprintf(
		"Estimate the nutritional values per serving of this recipe "+
			"(%d servings total): calories, protein, carbohydrates, fat and fiber. "+
			"Present the estimate as a short list and note that values are approximate.",
		r.Servings,
	)
}

func convertUnitsPrompt(fromUnit, toUnit, amount string) string {
	return fmt.Sprintf(
		"Convert %s %s to %s for the ingredients of this recipe. "+
			"Show the conversion and the practical kitchen measure.",
		amount, fromUnit, toUnit,
	)
}
