package constants

type Category string

const (
	Food           Category = "Food"
	Transport      Category = "Transport"
	Lodging        Category = "Lodging"
	Health         Category = "Health"
	Education      Category = "Education"
	Technology     Category = "Technology"
	Apparel        Category = "Apparel"
	Services       Category = "Services"
	Entertainment  Category = "Entertainment"
	OfficeSupplies Category = "OfficeSupplies"
	Other          Category = "Other"
)

var allCategories = []Category{
	Food,
	Transport,
	Lodging,
	Health,
	Education,
	Technology,
	Apparel,
	Services,
	Entertainment,
	OfficeSupplies,
	Other,
}

func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CategoryKeywords pairs a category with the keywords matched against a
// CNAE activity description. Slice order is significant: the first category
// whose keyword appears in the description wins.
type CategoryKeywords struct {
	Category Category
	Keywords []string
}

// DefaultKeywordTable returns the built-in CNAE keyword table. Keywords are
// Portuguese because CNAE descriptions from the registry are Portuguese.
func DefaultKeywordTable() []CategoryKeywords {
	return []CategoryKeywords{
		{Food, []string{
			"restaurante", "lanchonete", "padaria", "confeitaria", "pizzaria",
			"hamburgueria", "sorveteria", "açaí", "comida", "alimento",
			"bebida", "bar", "pub", "cervejaria", "cafeteria", "café",
			"pastelaria", "doceria", "panificação", "mercearia", "supermercado",
			"hipermercado", "minimercado", "empório", "delicatessen",
		}},
		{Transport, []string{
			"taxi", "uber", "transporte", "combustível", "gasolina", "etanol",
			"diesel", "posto", "estacionamento", "pedágio", "ônibus",
			"metrô", "trem", "avião", "passagem", "locação de veículos",
			"aluguel de carros", "moto", "bicicleta",
		}},
		{Lodging, []string{
			"hotel", "pousada", "hostel", "motel", "resort", "hospedagem",
			"alojamento", "pensão", "apart-hotel", "flat",
		}},
		{Health, []string{
			"farmácia", "drogaria", "medicamento", "hospital", "clínica",
			"consultório", "médico", "dentista", "laboratório", "exame",
			"fisioterapia", "psicologia", "veterinário", "ótica", "óculos",
		}},
		{Education, []string{
			"escola", "universidade", "faculdade", "curso", "treinamento",
			"educação", "ensino", "livraria", "papelaria", "material escolar",
			"biblioteca", "seminário", "workshop",
		}},
		{Technology, []string{
			"informática", "computador", "software", "hardware", "eletrônico",
			"celular", "smartphone", "tablet", "notebook", "impressora",
			"internet", "telecomunicações", "telefonia", "dados",
		}},
		{Apparel, []string{
			"roupa", "vestuário", "calçado", "sapato", "tênis", "sandália",
			"confecção", "moda", "boutique", "loja de roupas", "alfaiataria",
			"sapataria", "acessórios",
		}},
		{Services, []string{
			"consultoria", "advocacia", "contabilidade", "auditoria",
			"engenharia", "arquitetura", "design", "publicidade", "marketing",
			"limpeza", "segurança", "manutenção", "reparo", "instalação",
		}},
		{Entertainment, []string{
			"cinema", "teatro", "show", "evento", "festa", "entretenimento",
			"diversão", "parque", "museu", "exposição", "jogo", "esporte",
			"academia", "ginástica", "clube", "recreação",
		}},
		{OfficeSupplies, []string{
			"papelaria", "escritório", "material de escritório", "impressão",
			"gráfica", "fotocópia", "encadernação", "papel", "caneta",
			"arquivo", "pasta", "organizador",
		}},
	}
}
