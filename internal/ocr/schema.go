package ocr

// JSON Schema descriptors sent with each OCR request. The field descriptions
// double as extraction instructions for the provider, so they are written in
// the language of the documents being processed.

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func nullableStringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        []string{"string", "null"},
		"description": description,
	}
}

func numberProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

func objectSchema(description string, properties map[string]interface{}, required []string) map[string]interface{} {
	s := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
	if description != "" {
		s["description"] = description
	}
	return s
}

func nullableObjectSchema(description string, properties map[string]interface{}, required []string) map[string]interface{} {
	s := objectSchema(description, properties, required)
	s["type"] = []string{"object", "null"}
	return s
}

// workItemSchema describes one timesheet row.
func workItemSchema() map[string]interface{} {
	return objectSchema(
		"Denne skal KUN opprettes når alle påkrevde felter er tilstede i OCR-resultatet.",
		map[string]interface{}{
			"department":   nullableStringProp("Avdeling, enhet eller team som utførte arbeidet"),
			"employee":     stringProp("Navn på ansatt eller kontraktør som utførte arbeidet"),
			"project":      nullableStringProp("Prosjektnavn, prosjektnummer eller prosjektbeskrivelse knyttet til arbeidet"),
			"activity":     nullableStringProp("Type aktivitet eller arbeidsbeskrivelse"),
			"fromPeriod":   stringProp("Starttidsperiode for arbeidet, 'HH:mm'. Hvis arbeidet startet på hel time, settes minuttene til '00'. Hvis minuttene ikke er tilgjengelig, settes denne til 'HH:00'"),
			"toPeriod":     stringProp("Sluttidsperiode for arbeidet, 'HH:mm'. Hvis arbeidet sluttet på hel time, settes minuttene til '00'. Hvis minuttene ikke er tilgjengelig, settes denne til 'HH:00'"),
			"fromDate":     stringProp("Startdato for arbeidsperioden i format DD.MM.YYYY, basert på dato-feltet når arbeidet startet"),
			"toDate":       stringProp("Sluttdato for arbeidsperioden i format DD.MM.YYYY, basert på dato-feltet når arbeidet startet. Hvis sluttiden går over midnatt (00:00), settes denne til neste dag."),
			"payType":      nullableStringProp("Lønnsart eller lønnskode knyttet til arbeidet"),
			"extras":       stringProp("Tilleggskoder og beskrivelse av tillegg, SKAL være en tom streng hvis ikke tilgjengelig"),
			"total":        stringProp("Timer brukt totalt på arbeidsoppføringen, som desimaltall, bruk punktum som desimalskilletegn. Vil aldri være urimelig høyt. Alltid lavere enn 100. SKAL være en tom streng hvis ikke tilgjengelig"),
			"machineHours": stringProp("Maskintimer med utstyrskoder brukt, som desimaltall, bruk punktum som desimalskilletegn. Vil aldri være urimelig høyt. Alltid lavere enn 100. SKAL være en tom streng hvis ikke tilgjengelig"),
			"pageNumber":   numberProp("Sidenummer i PDF-dokumentet hvor arbeidsoppføringen ble funnet"),
			"id":           numberProp("Unikt løpenummer som starter på 1 og øker med 1 for hver oppføring"),
		},
		[]string{
			"department", "employee", "project", "activity", "fromPeriod", "toPeriod",
			"fromDate", "toDate", "payType", "extras", "total", "machineHours",
			"pageNumber", "id",
		},
	)
}

// lineItemSchema describes one invoiced product or service line.
func lineItemSchema() map[string]interface{} {
	return objectSchema(
		"",
		map[string]interface{}{
			"productNumber": stringProp("Produktnummer eller produktkode, SKAL være en tom streng hvis ikke tilgjengelig"),
			"description":   stringProp("Beskrivelse av produktet eller tjenesten, SKAL være en tom streng hvis ikke tilgjengelig"),
			"quantity":      stringProp("Antall enheter av produktet eller tjenesten som desimaltall, bruk punktum som desimalskilletegn. SKAL være en tom streng hvis ikke tilgjengelig"),
			"unit":          stringProp("Enhet for mengde, f.eks. 'stk', 'kg', SKAL være en tom streng hvis ikke tilgjengelig"),
			"unitPrice":     stringProp("Pris per enhet av produktet eller tjenesten som desimaltall, bruk punktum som desimalskilletegn. Kan være skrevet som et helt tall eller med mellomrom mellom hver tusen. SKAL være en tom streng hvis ikke tilgjengelig"),
			"totalPrice":    stringProp("Totalpris for linjeelementet (quantity * unitPrice) som desimaltall, bruk punktum som desimalskilletegn. Kan være skrevet som et helt tall eller med mellomrom mellom hver tusen. SKAL være en tom streng hvis ikke tilgjengelig"),
		},
		[]string{"productNumber", "description", "quantity", "unit", "unitPrice", "totalPrice"},
	)
}

// DocumentAnnotationSchema is the Invoice shape requested from the provider
// for each chunk.
func DocumentAnnotationSchema() map[string]interface{} {
	return objectSchema(
		"",
		map[string]interface{}{
			"workLists": map[string]interface{}{
				"type":        "array",
				"items":       workItemSchema(),
				"description": "Liste over timelister knyttet til fakturaen. Denne skal være et tomt array hvis ingen timelister er funnet.",
			},
			"lineItems": map[string]interface{}{
				"type":        []string{"array", "null"},
				"items":       lineItemSchema(),
				"description": "Liste over alle produkter eller tjenester på fakturaen, kan være null hvis ikke tilgjengelig",
			},
			"invoice": nullableObjectSchema(
				"Denne skal KUN opprettes når minimum ett felt er tilstede i OCR-resultatet.",
				map[string]interface{}{
					"number":  nullableStringProp("Fakturanummer"),
					"date":    nullableStringProp("Fakturadato i format DD.MM.YYYY"),
					"dueDate": nullableStringProp("Forfallsdato i format DD.MM.YYYY"),
					"kid":     stringProp("KID-nummer, vanligvis 10 siffer. SKAL være en tom streng hvis ikke tilgjengelig"),
				},
				[]string{"number", "date", "dueDate", "kid"},
			),
			"recipient": nullableObjectSchema(
				"Denne skal KUN opprettes når minimum ett felt er tilstede i OCR-resultatet.",
				map[string]interface{}{
					"name":          nullableStringProp("Mottakers organisasjonsnavn eller personnavn"),
					"streetAddress": nullableStringProp("Gateadresse eller postboksadresse til mottakeren"),
					"postalCode":    nullableStringProp("Postnummer til mottakeren"),
					"city":          nullableStringProp("Poststed eller by til mottakeren"),
				},
				[]string{"name", "streetAddress", "postalCode", "city"},
			),
			"reference": nullableObjectSchema(
				"Denne skal KUN opprettes når minimum ett felt er tilstede i OCR-resultatet.",
				map[string]interface{}{
					"ourReference":   stringProp("Vår referanse, kontaktperson hos avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
					"theirReference": stringProp("Deres referanse eller kontraktsnummer, SKAL være en tom streng hvis ikke tilgjengelig"),
				},
				[]string{"ourReference", "theirReference"},
			),
			"totals": nullableObjectSchema(
				"Denne skal KUN opprettes når minimum ett felt er tilstede i OCR-resultatet.",
				map[string]interface{}{
					"excludingMva": stringProp("Totalbeløp ekskl. MVA som desimaltall, bruk punktum som desimalskilletegn. SKAL være en tom streng hvis ikke tilgjengelig"),
					"mvaAmount":    stringProp("Total MVA-beløp som desimaltall, bruk punktum som desimalskilletegn. SKAL være en tom streng hvis ikke tilgjengelig"),
					"includingMva": stringProp("Totalbeløp inkl. MVA som desimaltall, bruk punktum som desimalskilletegn. SKAL være en tom streng hvis ikke tilgjengelig"),
				},
				[]string{"excludingMva", "mvaAmount", "includingMva"},
			),
			"sender": nullableObjectSchema(
				"Denne skal KUN opprettes når minimum ett felt er tilstede i OCR-resultatet.",
				map[string]interface{}{
					"name":                 stringProp("Avsenders organisasjonsnavn eller personnavn, SKAL være en tom streng hvis ikke tilgjengelig"),
					"streetAddress":        stringProp("Gateadresse eller postboksadresse til avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
					"orgNumber":            stringProp("Organisasjonsnummer til avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
					"businessRegistration": stringProp("Foretaksregister informasjon, SKAL være en tom streng hvis ikke tilgjengelig"),
					"euRegistration":       stringProp("EU registreringsnummer for MVA, SKAL være en tom streng hvis ikke tilgjengelig"),
					"mvaRegistration":      stringProp("MVA registreringsnummer, SKAL være en tom streng hvis ikke tilgjengelig"),
					"postalCode":           stringProp("Postnummer til avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
					"city":                 stringProp("Poststed eller by til avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
					"phoneNumber":          stringProp("Telefonnummer til avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
					"email":                stringProp("E-postadresse til avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
					"website":              stringProp("Nettsted URL til avsender, SKAL være en tom streng hvis ikke tilgjengelig"),
				},
				[]string{
					"name", "streetAddress", "orgNumber", "businessRegistration", "euRegistration",
					"mvaRegistration", "postalCode", "city", "phoneNumber", "email", "website",
				},
			),
		},
		[]string{"workLists", "lineItems", "invoice", "recipient", "reference", "totals", "sender"},
	)
}

// BBoxAnnotationSchema is the image annotation shape requested alongside the
// document annotation.
func BBoxAnnotationSchema() map[string]interface{} {
	return objectSchema(
		"",
		map[string]interface{}{
			"index":            numberProp("Index of the image"),
			"shortDescription": stringProp("A description in Norwegian describing the image."),
			"summary":          stringProp("Summarize the image."),
		},
		[]string{"index", "shortDescription", "summary"},
	)
}
