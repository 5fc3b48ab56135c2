package storefront

const imageBase = "https://customer-assets.emergentagent.com/job_17aea5b5-60fd-49c6-a8ac-e25439437904/artifacts/"

var fallbackProducts = []Product{
	{
		ID:          "puur-twellow-balsem",
		Name:        "Puur Twellow Balsem",
		Subtitle:    "Puur voedend gezichts- en handcreme",
		Description: "Een rijke, voedende balsem die diep hydrateert en de huid verzacht. Gemaakt met zorgvuldig geselecteerde natuurlijke ingredienten uit de Betuwe.",
		Ingredients: []string{"Bijenwas", "Olijfolie", "Lavendelolie", "Vitamine E", "Sheaboter"},
		Benefits:    []string{"Diepe hydratatie", "Verzacht droge huid", "Kalmeert geirriteerde huid", "Beschermt tegen weersinvloeden"},
		Usage:       "Breng een kleine hoeveelheid aan op het gezicht en de handen. Masseer zachtjes in tot volledig opgenomen.",
		Price:       24.95,
		ImageURL:    imageBase + "c97c3sfn_image.png",
		Category:    "gezichtsverzorging",
		InStock:     true,
	},
	{
		ID:          "honingbalsem",
		Name:        "Honingbalsem",
		Subtitle:    "Helend en zuiverend voor gevoelige en ontstoken huid",
		Description: "Een helende balsem verrijkt met pure Nederlandse honing voor de gevoelige en ontstoken huid.",
		Ingredients: []string{"Nederlandse honing", "Bijenwas", "Zonnebloempitolie", "Propolis", "Calendula-extract"},
		Benefits:    []string{"Helend en herstellend", "Antiseptische werking", "Kalmeert ontstekingen", "Voedt de huid intensief"},
		Usage:       "Breng aan op schone huid, met name op geirriteerde of ontstoken plekken.",
		Price:       27.95,
		ImageURL:    imageBase + "kp498wxu_image.png",
		Category:    "gezichtsverzorging",
		InStock:     true,
	},
	{
		ID:          "castorbalsem",
		Name:        "Castorbalsem",
		Subtitle:    "Voedend en zuiverend gezichts- en lichaamscreme",
		Description: "Een krachtige balsem met castorolie, bekend om zijn diepreinigende en voedende eigenschappen.",
		Ingredients: []string{"Castorolie", "Kokosolie", "Bijenwas", "Jojobaolie", "Rozemarijnolie"},
		Benefits:    []string{"Diepe reiniging", "Stimuleert huidregeneratie", "Verzacht en voedt", "Geschikt voor gezicht en lichaam"},
		Usage:       "Masseer een kleine hoeveelheid in op de huid.",
		Price:       22.95,
		ImageURL:    imageBase + "falyyyco_image.png",
		Category:    "gezichtsverzorging",
		InStock:     true,
	},
}

// FallbackProducts returns a copy of the built-in catalog
func FallbackProducts() []Product {
	out := make([]Product, len(fallbackProducts))
	copy(out, fallbackProducts)
	return out
}
