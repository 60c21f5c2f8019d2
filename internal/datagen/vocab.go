package datagen

// Categories is the fixed product-category vocabulary (20 entries). Its
// small cardinality keeps filtered reads selective enough to benchmark.
var Categories = []string{
	"Electronics",
	"Books",
	"Clothing",
	"Home & Garden",
	"Sports",
	"Toys",
	"Food & Beverage",
	"Health & Beauty",
	"Automotive",
	"Office Supplies",
	"Pet Supplies",
	"Jewelry",
	"Music",
	"Movies",
	"Video Games",
	"Baby Products",
	"Tools",
	"Outdoor",
	"Furniture",
	"Industrial",
}

// PaymentMethods is the fixed payment-method vocabulary (5 entries).
var PaymentMethods = []string{
	"credit_card",
	"debit_card",
	"paypal",
	"bank_transfer",
	"cash_on_delivery",
}

// ShippingCountries is the fixed destination vocabulary (50 entries), the
// group key for the aggregation benchmark.
var ShippingCountries = []string{
	"United States",
	"China",
	"Japan",
	"Germany",
	"United Kingdom",
	"France",
	"India",
	"Italy",
	"Brazil",
	"Canada",
	"Russia",
	"South Korea",
	"Spain",
	"Australia",
	"Mexico",
	"Indonesia",
	"Netherlands",
	"Saudi Arabia",
	"Turkey",
	"Switzerland",
	"Poland",
	"Belgium",
	"Sweden",
	"Argentina",
	"Norway",
	"Austria",
	"United Arab Emirates",
	"Nigeria",
	"Israel",
	"Ireland",
	"Denmark",
	"Singapore",
	"Malaysia",
	"South Africa",
	"Colombia",
	"Philippines",
	"Pakistan",
	"Chile",
	"Finland",
	"Bangladesh",
	"Egypt",
	"Vietnam",
	"Czech Republic",
	"Portugal",
	"Romania",
	"Peru",
	"Greece",
	"New Zealand",
	"Qatar",
	"Hungary",
}

// Product-name word lists. Names are composed adjective + material + noun so
// the string column has realistic cardinality without being unique per row.
var (
	productAdjectives = []string{
		"Ergonomic", "Compact", "Sleek", "Rustic", "Durable", "Lightweight",
		"Practical", "Refined", "Modern", "Classic", "Premium", "Handcrafted",
	}

	productMaterials = []string{
		"Steel", "Cotton", "Wooden", "Granite", "Leather", "Ceramic",
		"Bamboo", "Aluminum",
	}

	productNouns = []string{
		"Chair", "Lamp", "Keyboard", "Bottle", "Backpack", "Desk", "Watch",
		"Speaker", "Notebook", "Kettle", "Wallet", "Headset", "Mat", "Shelf",
		"Charger",
	}
)
