package ingredient

import (
	"strings"
	"unicode"
)

// Category 購物分類
type Category string

const (
	CategoryProduce     Category = "Produce"
	CategoryMeatSeafood Category = "Meat & Seafood"
	CategoryDairyEggs   Category = "Dairy & Eggs"
	CategoryGrainsPasta Category = "Grains & Pasta"
	CategorySpices      Category = "Spices & Seasonings"
	CategoryOilsSauces  Category = "Oils & Sauces"
	CategoryCanned      Category = "Canned & Jarred"
	CategoryOther       Category = "Other"
)

// displayOrder 購物清單的顯示順序
var displayOrder = []Category{
	CategoryProduce,
	CategoryMeatSeafood,
	CategoryDairyEggs,
	CategoryGrainsPasta,
	CategorySpices,
	CategoryOilsSauces,
	CategoryCanned,
	CategoryOther,
}

// Categories 回傳全部 8 個分類（顯示順序）
func Categories() []Category {
	out := make([]Category, len(displayOrder))
	copy(out, displayOrder)
	return out
}

// Valid 是否為已知分類
func (c Category) Valid() bool {
	for _, known := range displayOrder {
		if c == known {
			return true
		}
	}
	return false
}

type keywordGroup struct {
	category Category
	keywords []string
}

// categoryPhrases 先於 categoryKeywords 比對，處理會被較短關鍵字搶走的複合名稱
var categoryPhrases = []keywordGroup{
	{CategoryOilsSauces, []string{
		"peanut butter", "almond butter", "apple cider vinegar", "grapeseed oil", "fish sauce",
		"tomato sauce",
	}},
	{CategoryGrainsPasta, []string{
		"egg noodle", "cornstarch", "corn starch", "cornmeal", "cornflour", "corn flour",
		"corn tortilla",
	}},
}

// categoryKeywords 比對順序與顯示順序不同：
// 罐頭先比，"canned tomatoes" 才不會落到蔬果；蔬果在乳製品前，"eggplant" 才不會被 "egg" 吃掉；
// 乳製品在香料前，"unsalted butter" 才不會被 "salt" 吃掉。
// 每個關鍵字都必須能分到自己的分類，不可被前面分類的關鍵字包含。
var categoryKeywords = []keywordGroup{
	{CategoryCanned, []string{
		"canned", "can of", "tinned", "jarred", "jar of", "chickpea", "kidney bean",
		"black bean", "baked bean", "tomato paste", "coconut milk", "pickle", "olives",
	}},
	{CategoryProduce, []string{
		"tomato", "onion", "garlic", "potato", "carrot", "lettuce", "spinach", "kale",
		"cucumber", "bell pepper", "zucchini", "broccoli", "cauliflower", "cabbage", "celery",
		"mushroom", "avocado", "lemon", "lime", "apple", "banana", "berries", "berry",
		"orange", "grape", "mango", "pineapple", "peach", "pear", "basil", "parsley",
		"cilantro", "coriander leaves", "mint", "ginger", "scallion", "spring onion", "leek",
		"shallot", "eggplant", "aubergine", "asparagus", "green bean", "green pea", "snow pea",
		"garden pea", "sweetcorn", "sweet corn", "corn on the cob", "corn kernel", "squash",
		"pumpkin", "beet", "radish", "jalapeno", "chili pepper", "fresh herb",
	}},
	{CategoryDairyEggs, []string{
		"milk", "cheese", "parmesan", "mozzarella", "cheddar", "feta", "ricotta", "butter",
		"cream", "yogurt", "yoghurt", "egg", "ghee", "buttermilk",
	}},
	{CategoryMeatSeafood, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "bacon", "sausage", "steak", "mince",
		"prosciutto", "salami", "duck", "veal", "fish", "salmon", "tuna", "cod", "shrimp",
		"prawn", "crab", "lobster", "mussel", "clam", "squid", "anchov",
	}},
	{CategorySpices, []string{
		"salt", "black pepper", "peppercorn", "paprika", "cumin", "cinnamon", "oregano",
		"thyme", "rosemary", "turmeric", "curry", "nutmeg", "clove", "cardamom",
		"chili flakes", "chili powder", "bay leaf", "bay leaves", "seasoning", "spice",
		"vanilla", "saffron", "dill", "sage",
	}},
	{CategoryOilsSauces, []string{
		"oil", "vinegar", "sauce", "ketchup", "mayonnaise", "mustard", "dressing", "salsa",
		"pesto", "honey", "syrup", "tahini",
	}},
	{CategoryGrainsPasta, []string{
		"rice", "pasta", "spaghetti", "penne", "macaroni", "noodle", "lasagna", "flour",
		"bread", "oat", "quinoa", "couscous", "barley", "bulgur", "tortilla", "cereal",
		"cracker", "breadcrumb",
	}},
}

// categoryWords 太短、容易出現在其他字裡的名稱（"peanut"、"peppercorn"、"graham"），
// 只在整個單字相同時才算，並且放在最後比對
var categoryWords = map[string]Category{
	"pea":  CategoryProduce,
	"peas": CategoryProduce,
	"corn": CategoryProduce,
	"ham":  CategoryMeatSeafood,
	"hams": CategoryMeatSeafood,
}

// CategorizeIngredient 依關鍵字將食材分類，第一個符合的分類勝出，否則為 Other
func CategorizeIngredient(name string) Category {
	normalized := foldCase(strings.TrimSpace(name))
	if normalized == "" {
		return CategoryOther
	}

	if c, ok := matchKeywords(normalized, categoryPhrases); ok {
		return c
	}
	if c, ok := matchKeywords(normalized, categoryKeywords); ok {
		return c
	}

	for _, word := range strings.FieldsFunc(normalized, func(r rune) bool { return !unicode.IsLetter(r) }) {
		if c, ok := categoryWords[word]; ok {
			return c
		}
	}
	return CategoryOther
}

func matchKeywords(name string, groups []keywordGroup) (Category, bool) {
	for _, g := range groups {
		for _, keyword := range g.keywords {
			if strings.Contains(name, keyword) {
				return g.category, true
			}
		}
	}
	return "", false
}
