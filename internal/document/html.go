package document

import (
	"bytes"
	"fmt"
	"html/template"
)

var pageTemplate = template.Must(template.New("prescription").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 40px;
            background-color: #f9f9f9;
        }
        .header {
            background-color: #C44D35;
            color: white;
            text-align: center;
            font-size: 28px;
            font-weight: bold;
            padding: 20px 0;
            margin-bottom: 0;
        }
        .sub-header {
            background-color: black;
            color: white;
            display: flex;
            justify-content: space-between;
            padding: 10px 40px;
            font-size: 14px;
            font-weight: bold;
        }
        .section {
            margin-bottom: 30px;
        }
        .section-title {
            font-weight: bold;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .field-box {
            border: 1px solid black;
            height: 80px;
            margin-bottom: 20px;
            padding: 10px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
            margin-top: 20px;
            margin-bottom: 40px;
        }
        table, th, td {
            border: 1px solid black;
        }
        th, td {
            padding: 10px;
            text-align: left;
        }
        th {
            background-color: #f2f2f2;
            font-weight: bold;
        }
        .signature {
            margin-top: 40px;
            font-size: 14px;
        }
        .footer {
            margin-top: 30px;
            border-top: 1px solid #000;
            padding-top: 10px;
            font-size: 14px;
        }
    </style>
</head>
<body>
    <div class="header">
        Your Conslt Prescription
    </div>

    <div class="sub-header">
        <div>CONSLT.AI</div>
        <div>DATE: {{.Date}}</div>
    </div>

    <table>
        <tr>
            <th>Date:</th>
            <td>{{.Date}}</td>
            <th>Time:</th>
            <td>{{.Time}}</td>
        </tr>
        <tr>
            <th>Name:</th>
            <td>John Doe</td>
            <th>Age:</th>
            <td>48 years</td>
        </tr>
        <tr>
            <th>Hospital:</th>
            <td>Stanford Health</td>
            <th>Height:</th>
            <td>181 cm</td>
        </tr>
        <tr>
            <th>Contact info:</th>
            <td>+1(408) 000-000</td>
            <th>Weight:</th>
            <td>74 Kg</td>
        </tr>
    </table>

    <div class="section">
        <div class="section-title">Reason for Visit</div>
        <div class="field-box">{{.ReasonForVisit}}</div>
    </div>

    <div class="section">
        <div class="section-title">Doctor's Comments</div>
        <div class="field-box">{{.DoctorsComments}}</div>
    </div>

    <div class="section">
        <div class="section-title">Prescription &amp; Instructions</div>
        <div class="field-box">{{.Prescription}}</div>
    </div>

    <div class="signature">
        <div>Signature: ______________________</div>
    </div>

    <div class="footer">
        Follow Up Date: {{.FollowUpDate}} | Time: {{.FollowUpTime}}
    </div>

    <div class="patient-number">
        Patient Number: {{.PatientNumber}}
    </div>
</body>
</html>
`))

type pageData struct {
	Date            string
	Time            string
	ReasonForVisit  string
	DoctorsComments string
	Prescription    string
	FollowUpDate    string
	FollowUpTime    string
	PatientNumber   int64
}

// RenderHTML fills the prescription layout with rec. Extracted values are
// HTML-escaped.
func RenderHTML(rec *Record) (string, error) {
	data := pageData{
		Date:            rec.Date,
		Time:            rec.Time,
		ReasonForVisit:  string(rec.Result.Diagnosis),
		DoctorsComments: string(rec.Result.Summary),
		Prescription:    rec.Result.Prescription(),
		FollowUpDate:    rec.FollowUpDate,
		FollowUpTime:    rec.FollowUpTime,
		PatientNumber:   rec.PatientNumber,
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("document: render html: %w", err)
	}
	return buf.String(), nil
}
