package main

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/campuscycles/gearbox/pkg/models"
)

func TestDebugProgressParams(t *testing.T) {
	app := setupTestApp(t)
	transactionID := createTransaction(t, app)
	t.Logf("transactionID=%q", transactionID)

	status, body := doJSON(t, app, http.MethodPost, "/workflow-steps/initialize/bike-sales/"+transactionID, map[string]any{
		"created_by": "mechanic-1",
	})
	t.Logf("init status=%d", status)

	var steps []models.WorkflowStep
	_ = json.Unmarshal(body.ResponseObject, &steps)
	for _, s := range steps {
		t.Logf("created step id=%s tx=%q type=%q order=%d", s.ID, s.TransactionID, s.WorkflowType, s.StepOrder)
	}

	status, body = doJSON(t, app, http.MethodGet, "/workflow-steps/", nil)
	t.Logf("list-all status=%d", status)
	var all []models.WorkflowStep
	_ = json.Unmarshal(body.ResponseObject, &all)
	for _, s := range all {
		t.Logf("stored step id=%s tx=%q type=%q order=%d", s.ID, s.TransactionID, s.WorkflowType, s.StepOrder)
	}

	status, body = doJSON(t, app, http.MethodGet, "/workflow-steps/transaction/"+transactionID+"/bike_sales", nil)
	var byTx []models.WorkflowStep
	_ = json.Unmarshal(body.ResponseObject, &byTx)
	t.Logf("by-tx-and-type status=%d msg=%s count=%d", status, body.Message, len(byTx))

	status, body = doJSON(t, app, http.MethodGet, "/workflow-steps/progress/"+transactionID+"/bike_sales", nil)
	t.Logf("progress status=%d msg=%s raw=%s", status, body.Message, body.ResponseObject)
}
