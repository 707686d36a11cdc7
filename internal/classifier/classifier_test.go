package classifier_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/intake/internal/classifier"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		service        string
		message        string
		wantCategory   classifier.Category
		wantPriority   classifier.Priority
		wantConfidence float64
		wantStatus     classifier.SuggestedStatus
	}{
		{
			name:           "technical integration request",
			service:        "Integracion API y soporte",
			message:        "Necesito integrar mi formulario web con su API.",
			wantCategory:   classifier.CategoryTechnical,
			wantPriority:   classifier.PriorityMedium,
			wantConfidence: 0.81,
			wantStatus:     classifier.StatusPending,
		},
		{
			name:           "billing wins over technical",
			service:        "Soporte API",
			message:        "La factura de la integracion llego duplicada",
			wantCategory:   classifier.CategoryBilling,
			wantPriority:   classifier.PriorityMedium,
			wantConfidence: 0.81,
			wantStatus:     classifier.StatusPending,
		},
		{
			name:           "technical wins over sales",
			service:        "Demo",
			message:        "Quiero ver el backend",
			wantCategory:   classifier.CategoryTechnical,
			wantPriority:   classifier.PriorityMedium,
			wantConfidence: 0.81,
			wantStatus:     classifier.StatusPending,
		},
		{
			name:           "sales request",
			service:        "Ventas",
			message:        "Quisiera una cotizacion del producto",
			wantCategory:   classifier.CategorySales,
			wantPriority:   classifier.PriorityLow,
			wantConfidence: 0.81,
			wantStatus:     classifier.StatusPending,
		},
		{
			name:           "urgent sales request",
			service:        "Ventas",
			message:        "URGENTE necesito el precio hoy",
			wantCategory:   classifier.CategorySales,
			wantPriority:   classifier.PriorityHigh,
			wantConfidence: 0.92,
			wantStatus:     classifier.StatusInProgress,
		},
		{
			name:           "urgent support request",
			service:        "Integracion API y soporte",
			message:        "Necesito soporte tecnico urgente, no funciona.",
			wantCategory:   classifier.CategoryTechnical,
			wantPriority:   classifier.PriorityHigh,
			wantConfidence: 0.92,
			wantStatus:     classifier.StatusInProgress,
		},
		{
			name:           "no keywords is support",
			service:        "Consulta",
			message:        "Hola, quisiera mas informacion",
			wantCategory:   classifier.CategorySupport,
			wantPriority:   classifier.PriorityLow,
			wantConfidence: 0.81,
			wantStatus:     classifier.StatusPending,
		},
		{
			name:           "english urgency",
			service:        "Website",
			message:        "The site is not working",
			wantCategory:   classifier.CategorySupport,
			wantPriority:   classifier.PriorityHigh,
			wantConfidence: 0.92,
			wantStatus:     classifier.StatusInProgress,
		},
		{
			name:           "empty fields keep the separator",
			service:        "",
			message:        "",
			wantCategory:   classifier.CategorySupport,
			wantPriority:   classifier.PriorityLow,
			wantConfidence: 0.81,
			wantStatus:     classifier.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.service, tt.message)

			if got.Category != tt.wantCategory {
				t.Errorf("category = %s, want %s", got.Category, tt.wantCategory)
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("priority = %s, want %s", got.Priority, tt.wantPriority)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.SuggestedStatus != tt.wantStatus {
				t.Errorf("suggestedStatus = %s, want %s", got.SuggestedStatus, tt.wantStatus)
			}
		})
	}
}

func TestClassifySummary(t *testing.T) {
	got := classifier.Classify("Integracion API y soporte", "Necesito integrar mi formulario web con su API.")

	if got.Summary != "Classification: technical with priority medium." {
		t.Errorf("summary = %q", got.Summary)
	}
	if !strings.Contains(got.Summary, string(got.Category)) || !strings.Contains(got.Summary, string(got.Priority)) {
		t.Errorf("summary %q must contain category and priority verbatim", got.Summary)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := [][2]string{
		{"Integracion API y soporte", "Necesito integrar mi formulario web con su API."},
		{"Pagos", "Error en el cobro"},
		{"", ""},
		{"Servicio A", "Mensaje A"},
	}

	for _, in := range inputs {
		first := classifier.Classify(in[0], in[1])
		for range 10 {
			if got := classifier.Classify(in[0], in[1]); got != first {
				t.Fatalf("Classify(%q, %q) = %+v, then %+v", in[0], in[1], first, got)
			}
		}
	}
}

func TestClassifyConfidenceLevels(t *testing.T) {
	inputs := [][2]string{
		{"Ventas", "demo"},
		{"Ventas", "demo urgente"},
		{"Facturacion", "invoice"},
		{"Otro", "nada"},
		{"API", "critical bug"},
		{"   ", "   "},
	}

	allowed := map[float64]bool{
		classifier.ConfidenceUrgent:  true,
		classifier.ConfidenceMatched: true,
		classifier.ConfidenceGeneral: true,
	}

	for _, in := range inputs {
		got := classifier.Classify(in[0], in[1])
		if !allowed[got.Confidence] {
			t.Errorf("Classify(%q, %q) confidence = %v, not a known level", in[0], in[1], got.Confidence)
		}
	}
}

func TestClassifyNeverSuggestsCompleted(t *testing.T) {
	inputs := [][2]string{
		{"Soporte", "Todo listo, ya funciona"},
		{"Ventas", "compra finalizada"},
		{"Backend", "caida total"},
	}

	for _, in := range inputs {
		got := classifier.Classify(in[0], in[1])
		if got.SuggestedStatus != classifier.StatusPending && got.SuggestedStatus != classifier.StatusInProgress {
			t.Errorf("Classify(%q, %q) suggestedStatus = %s", in[0], in[1], got.SuggestedStatus)
		}
	}
}
