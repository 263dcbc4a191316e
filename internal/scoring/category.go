package scoring

// Category es la etiqueta semantica de una pregunta. El scorer se indexa por
// categoria y no por el texto de la pregunta.
type Category string

const (
	CategoryInvestmentMode       Category = "investment_mode"
	CategoryIncomeRegularity     Category = "income_regularity"
	CategoryHomeownership        Category = "homeownership"
	CategorySavingsRate          Category = "savings_rate"
	CategoryInvestingExperience  Category = "investing_experience"
	CategoryFixedAssetAllocation Category = "fixed_asset_allocation"
	CategoryDependents           Category = "dependents"
	CategoryMajorGoals           Category = "major_goals"
	CategoryCheckingFrequency    Category = "checking_frequency"
	CategoryDipAction            Category = "dip_action"
	CategoryStrategy             Category = "strategy"
	CategoryCrashReaction        Category = "crash_reaction"
	CategoryInvestmentHorizon    Category = "investment_horizon"
	CategoryEmergencyFund        Category = "emergency_fund"
	CategoryEMIPercentage        Category = "emi_percentage"
	CategoryInvestingAmount      Category = "investing_amount"
)

// Textos canonicos del cuestionario. Se conservan tal cual para poder
// resolver preguntas antiguas que no tienen categoria asignada.
const (
	TextInvestmentMode       = "How would you like to invest?"
	TextIncomeRegularity     = "How regular is your income?"
	TextHomeownership        = "Do you own a house?"
	TextSavingsRate          = "What percentage of your monthly income do you save?"
	TextInvestingExperience  = "How long have you been investing?"
	TextFixedAssetAllocation = "What percentage of your portfolio is in fixed assets?"
	TextDependents           = "Do you have financial dependents?"
	TextMajorGoals           = "Do you have any major financial goals in the next 3 years?"
	TextCheckingFrequency    = "How often do you check your portfolio?"
	TextDipAction            = "At what fall in your portfolio would you start selling?"
	TextStrategy             = "Which investment strategy suits you best?"
	TextCrashReaction        = "What would you do if your portfolio crashed?"
	TextInvestmentHorizon    = "What is your preferred investment horizon?"
	TextEmergencyFund        = "How many months of expenses does your emergency fund cover?"
	TextEMIPercentage        = "What percentage of your income goes to EMIs?"
	TextInvestingAmount      = "How much do you want to invest?"
)

var categoryByText = map[string]Category{
	TextInvestmentMode:       CategoryInvestmentMode,
	TextIncomeRegularity:     CategoryIncomeRegularity,
	TextHomeownership:        CategoryHomeownership,
	TextSavingsRate:          CategorySavingsRate,
	TextInvestingExperience:  CategoryInvestingExperience,
	TextFixedAssetAllocation: CategoryFixedAssetAllocation,
	TextDependents:           CategoryDependents,
	TextMajorGoals:           CategoryMajorGoals,
	TextCheckingFrequency:    CategoryCheckingFrequency,
	TextDipAction:            CategoryDipAction,
	TextStrategy:             CategoryStrategy,
	TextCrashReaction:        CategoryCrashReaction,
	TextInvestmentHorizon:    CategoryInvestmentHorizon,
	TextEmergencyFund:        CategoryEmergencyFund,
	TextEMIPercentage:        CategoryEMIPercentage,
	TextInvestingAmount:      CategoryInvestingAmount,
}

// CategoryForText resuelve la categoria a partir del texto canonico.
// La comparacion es exacta (mayusculas y espacios incluidos).
func CategoryForText(text string) (Category, bool) {
	c, ok := categoryByText[text]
	return c, ok
}

// Resolve devuelve la categoria declarada o, si esta vacia, la deducida del texto.
func Resolve(category, text string) (Category, bool) {
	if category != "" {
		c := Category(category)
		return c, c.Known()
	}
	return CategoryForText(text)
}

// Known indica si el scorer tiene una tabla para la categoria.
func (c Category) Known() bool {
	if c == CategoryInvestingAmount {
		return true
	}
	_, ok := answerTables[c]
	return ok
}

// Categories devuelve todas las categorias puntuables en orden de cuestionario.
func Categories() []Category {
	return []Category{
		CategoryInvestmentMode,
		CategoryIncomeRegularity,
		CategoryHomeownership,
		CategorySavingsRate,
		CategoryInvestingExperience,
		CategoryFixedAssetAllocation,
		CategoryDependents,
		CategoryMajorGoals,
		CategoryCheckingFrequency,
		CategoryDipAction,
		CategoryStrategy,
		CategoryCrashReaction,
		CategoryInvestmentHorizon,
		CategoryEmergencyFund,
		CategoryEMIPercentage,
		CategoryInvestingAmount,
	}
}
