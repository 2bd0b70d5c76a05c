package layouts

// CalculateTitle builds the document title from a page title and the brand.
func CalculateTitle(title, brand string) string {
	switch {
	case title != "" && brand != "":
		return title + " - " + brand
	case title != "":
		return title
	case brand != "":
		return brand
	}
	return "Opt-in"
}
