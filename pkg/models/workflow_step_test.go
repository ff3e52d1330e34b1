package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowType_Valid(t *testing.T) {
	assert.True(t, WorkflowTypeBikeSales.Valid())
	assert.True(t, WorkflowTypeRepairProcess.Valid())
	assert.True(t, WorkflowTypeOrderFulfillment.Valid())
	assert.True(t, WorkflowTypeCustomWorkflow.Valid())
	assert.False(t, WorkflowType("bike-sales").Valid())
	assert.False(t, WorkflowType("").Valid())
}

func TestCanonicalSequence_BikeSales(t *testing.T) {
	sequence := CanonicalSequence(WorkflowTypeBikeSales)
	require.Len(t, sequence, 4)

	assert.Equal(t, StepTemplate{Name: "BikeSpec", Order: 1}, sequence[0])
	assert.Equal(t, StepTemplate{Name: "Build", Order: 2}, sequence[1])
	assert.Equal(t, StepTemplate{Name: "Creation", Order: 3}, sequence[2])
	assert.Equal(t, StepTemplate{Name: "Checkout", Order: 4}, sequence[3])
}

func TestCanonicalSequence_RepairProcess(t *testing.T) {
	sequence := CanonicalSequence(WorkflowTypeRepairProcess)
	require.Len(t, sequence, 4)

	names := make([]string, 0, len(sequence))
	for _, template := range sequence {
		names = append(names, template.Name)
		assert.LessOrEqual(t, len(template.Name), MaxStepNameLength)
	}

	assert.Equal(t, []string{"Assessment", "Parts Ordering", "Repair Work", "Quality Check"}, names)
}

func TestCanonicalSequence_UnsupportedTypes(t *testing.T) {
	assert.Nil(t, CanonicalSequence(WorkflowTypeOrderFulfillment))
	assert.Nil(t, CanonicalSequence(WorkflowTypeCustomWorkflow))
	assert.Nil(t, CanonicalSequence(WorkflowType("unknown")))
}

func TestTransactionType_Valid(t *testing.T) {
	for _, transactionType := range []TransactionType{
		TransactionTypeRepair, TransactionTypeRetail, TransactionTypeRetrospec,
		TransactionTypeBeerBike, TransactionTypeRefurb, TransactionTypeEmployee,
	} {
		assert.True(t, transactionType.Valid(), string(transactionType))
	}

	assert.False(t, TransactionType("wholesale").Valid())
}

func TestUserRole_Valid(t *testing.T) {
	assert.True(t, UserRoleAdmin.Valid())
	assert.True(t, UserRoleHeadMechanic.Valid())
	assert.True(t, UserRoleMechanic.Valid())
	assert.True(t, UserRoleOperations.Valid())
	assert.False(t, UserRole("janitor").Valid())
}
