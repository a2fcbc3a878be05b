package pailib_test

import (
	"testing"

	"github.com/PAICookers/PAIlib/pkg/hw"
	"github.com/PAICookers/PAIlib/pkg/log"
	"github.com/PAICookers/PAIlib/pkg/model"
	"github.com/PAICookers/PAIlib/pkg/wire"
)

// TestE2E_OfflineCoreDeployment walks the full configuration flow of one
// offline core: place it on the chip, build its parameter register and a
// neuron entry, pack both into register images, and read them back the
// way a frame decoder would.
func TestE2E_OfflineCoreDeployment(t *testing.T) {
	core, err := hw.NewCoord(1, 3)
	if err != nil {
		t.Fatalf("NewCoord: %v", err)
	}
	testChip, err := hw.NewCoord(1, 0)
	if err != nil {
		t.Fatalf("NewCoord: %v", err)
	}

	coreSchema, err := model.ResolveSchema(model.KindOfflineCore, model.Mode{})
	if err != nil {
		t.Fatalf("ResolveSchema: %v", err)
	}
	coreModel, err := model.FromNamedValues(coreSchema, map[string]any{
		"name":            core.String(),
		"weight_width":    8,
		"LCN":             1,
		"input_width":     1,
		"spike_width":     1,
		"neuron_num":      100,
		"pool_max":        0,
		"tick_wait_start": 1,
		"tick_wait_end":   100,
		"SNN_EN":          1,
		"target_LCN":      1,
		"test_chip_addr":  testChip,
	})
	if err != nil {
		t.Fatalf("core model: %v", err)
	}

	mode, err := coreModel.CoreMode()
	if err != nil {
		t.Fatalf("CoreMode: %v", err)
	}
	if mode != model.ModeSNN {
		t.Fatalf("CoreMode = %v, want ModeSNN", mode)
	}

	dest, err := hw.NewCoord(2, 0)
	if err != nil {
		t.Fatalf("NewCoord: %v", err)
	}
	neuronSchema, err := model.ResolveSchema(model.KindOfflineNeuron, model.Mode{})
	if err != nil {
		t.Fatalf("ResolveSchema: %v", err)
	}
	neuron, err := model.FromNamedValues(neuronSchema, map[string]any{
		"bit_truncation":      8,
		"weight_det_stoch":    0,
		"leak_v":              -1,
		"leak_det_stoch":      0,
		"leak_reversal_flag":  0,
		"threshold_pos":       100,
		"threshold_neg":       100,
		"threshold_neg_mode":  0,
		"threshold_mask_ctrl": 0,
		"leak_post":           1,
		"reset_v":             0,
		"reset_mode":          0,
		"addr_chip_x":         0,
		"addr_chip_y":         0,
		"addr_core_x":         dest.X,
		"addr_core_y":         dest.Y,
		"addr_core_x_ex":      0,
		"addr_core_y_ex":      0,
		"addr_axon":           77,
		"tick_relative":       0,
	})
	if err != nil {
		t.Fatalf("neuron model: %v", err)
	}

	mem := &log.MemoryLogger{}
	codec := wire.Codec{Logger: mem}

	coreImg, err := codec.Pack(coreModel)
	if err != nil {
		t.Fatalf("Pack core: %v", err)
	}
	neuronImg, err := codec.Pack(neuron)
	if err != nil {
		t.Fatalf("Pack neuron: %v", err)
	}
	if coreImg.BitLen() != 67 || neuronImg.BitLen() != 214 {
		t.Fatalf("image widths = %d/%d, want 67/214", coreImg.BitLen(), neuronImg.BitLen())
	}

	// A frame decoder sees raw bytes plus the schema.
	coreBack, err := codec.Unpack(coreImg, coreSchema)
	if err != nil {
		t.Fatalf("Unpack core: %v", err)
	}
	if !coreModel.Equal(coreBack) {
		t.Error("core register round trip changed the configuration")
	}
	neuronBack, err := codec.Unpack(neuronImg, neuronSchema)
	if err != nil {
		t.Fatalf("Unpack neuron: %v", err)
	}
	if !neuron.Equal(neuronBack) {
		t.Error("neuron entry round trip changed the configuration")
	}

	if got := len(mem.Events()); got != 4 {
		t.Errorf("captured %d codec events, want 4", got)
	}
}

// TestE2E_MulticastConfiguration configures a group of cores reached by
// one replication id and checks each member accepts the shared register.
func TestE2E_MulticastConfiguration(t *testing.T) {
	base, err := hw.NewCoord(0b00100, 0b00000)
	if err != nil {
		t.Fatalf("NewCoord: %v", err)
	}
	peer, err := hw.NewCoord(0b00101, 0b00010)
	if err != nil {
		t.Fatalf("NewCoord: %v", err)
	}

	rid, err := hw.ReplicationIDOf(base, peer)
	if err != nil {
		t.Fatalf("ReplicationIDOf: %v", err)
	}
	targets := hw.MulticastCoords(base, rid)
	if len(targets) != 4 {
		t.Fatalf("multicast reaches %d cores, want 4", len(targets))
	}

	cost := hw.RoutingConsumption(len(targets))
	if cost.NL0 != 4 {
		t.Errorf("routing cost NL0 = %d, want 4", cost.NL0)
	}

	schema, err := model.ResolveSchema(model.KindOfflineCore, model.Mode{})
	if err != nil {
		t.Fatalf("ResolveSchema: %v", err)
	}

	shared := map[string]any{
		"weight_width":    1,
		"LCN":             4,
		"input_width":     1,
		"spike_width":     1,
		"neuron_num":      512,
		"pool_max":        0,
		"tick_wait_start": 1,
		"tick_wait_end":   0,
		"SNN_EN":          1,
		"target_LCN":      4,
		"test_chip_addr":  0,
	}

	var img wire.RegisterImage
	for i, target := range targets {
		values := make(map[string]any, len(shared)+1)
		for k, v := range shared {
			values[k] = v
		}
		values["name"] = target.String()

		m, err := model.FromNamedValues(schema, values)
		if err != nil {
			t.Fatalf("core %v: %v", target, err)
		}
		packed, err := wire.Pack(m)
		if err != nil {
			t.Fatalf("Pack %v: %v", target, err)
		}
		if i == 0 {
			img = packed
			continue
		}
		if !packed.Equal(img) {
			t.Errorf("core %v packed differently from the group image", target)
		}
	}
}

// TestE2E_ExportInterchange serializes a configured core for an external
// toolchain and reloads it, including the legacy alias spellings an old
// tool dump may carry.
func TestE2E_ExportInterchange(t *testing.T) {
	schema, err := model.ResolveSchema(model.KindOfflineNeuron, model.Mode{})
	if err != nil {
		t.Fatalf("ResolveSchema: %v", err)
	}

	// Old dumps use weight_mode_type / leak_mode_type.
	m, err := model.FromNamedValues(schema, map[string]any{
		"name":                "neuron-legacy",
		"bit_truncation":      0,
		"weight_mode_type":    1,
		"leak_v":              0,
		"leak_mode_type":      1,
		"leak_reversal_flag":  0,
		"threshold_pos":       1,
		"threshold_neg":       0,
		"threshold_neg_mode":  1,
		"threshold_mask_ctrl": 4,
		"leak_post":           0,
		"reset_v":             -3,
		"reset_mode":          2,
		"addr_chip_x":         0,
		"addr_chip_y":         0,
		"addr_core_x":         0,
		"addr_core_y":         0,
		"addr_core_x_ex":      0,
		"addr_core_y_ex":      0,
		"addr_axon":           0,
		"tick_relative":       255,
	})
	if err != nil {
		t.Fatalf("FromNamedValues: %v", err)
	}

	got, err := m.Get("synaptic_integration_mode")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != 1 {
		t.Errorf("synaptic_integration_mode = %d, want 1", got)
	}

	data, err := wire.MarshalExport(m)
	if err != nil {
		t.Fatalf("MarshalExport: %v", err)
	}
	back, err := wire.UnmarshalExport(data, schema)
	if err != nil {
		t.Fatalf("UnmarshalExport: %v", err)
	}
	if !m.Equal(back) {
		t.Error("export interchange changed the configuration")
	}
}
