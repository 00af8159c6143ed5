package core

// Sample payloads served to integrators so they can see exactly what
// the ingestion pipeline accepts. Each format exercises a different
// alias style on purpose: the CSV uses canonical headers, the JSON the
// short aliases, the XML a mix.

const sampleCSV = `corporate_reference_number,guarantee_type,nominal_amount,nominal_amount_currency,expiry_date,applicant_name,applicant_address,beneficiary_name,beneficiary_address
CRN-2030-0001,Bank,50000.00,USD,2030-12-31,Acme Industries,12 Foundry Lane,Globex Corp,800 Harbor Blvd
CRN-2030-0002,Bid Bond,125000.50,EUR,2030-06-30,Initech LLC,433 Main Street,Umbrella Holdings,9 Rue de la Paix
`

const sampleJSON = `[
  {
    "reference_number": "CRN-2030-0003",
    "type": "Insurance",
    "amount": 75000,
    "currency": "GBP",
    "expiry": "2030-09-15",
    "applicant": "Stark Shipping",
    "applicant_address": "1 Dockside Way",
    "beneficiary": "Wayne Logistics",
    "beneficiary_address": "1007 Mountain Drive"
  }
]
`

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<guarantees>
  <guarantee>
    <reference>CRN-2030-0004</reference>
    <guarantee_type>Surety</guarantee_type>
    <nominal_amount>42000.00</nominal_amount>
    <currency>CHF</currency>
    <expiry_date>2030-03-01</expiry_date>
    <applicant_name>Tyrell Trading</applicant_name>
    <applicant_address>2019 Sepulveda Ave</applicant_address>
    <beneficiary_name>Soylent Foods</beneficiary_name>
    <beneficiary_address>101 Green Street</beneficiary_address>
  </guarantee>
</guarantees>
`

// SamplePayload returns an example upload for the given format along
// with its content type. ok is false for unknown formats.
func SamplePayload(format string) (data []byte, contentType string, ok bool) {
	switch format {
	case "csv":
		return []byte(sampleCSV), "text/csv", true
	case "json":
		return []byte(sampleJSON), "application/json", true
	case "xml":
		return []byte(sampleXML), "application/xml", true
	default:
		return nil, "", false
	}
}
