package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
)

func TestVulkanResultString(t *testing.T) {
	cases := map[vk.Result]string{
		vk.Success:        "VK_SUCCESS",
		vk.Suboptimal:     "VK_SUBOPTIMAL_KHR",
		vk.ErrorOutOfDate: "VK_ERROR_OUT_OF_DATE_KHR",
		vk.ErrorDeviceLost: "VK_ERROR_DEVICE_LOST",
	}
	for result, want := range cases {
		if got := VulkanResultString(result); got != want {
			t.Errorf("VulkanResultString(%d) = %q, want %q", result, got, want)
		}
	}
}

func TestVulkanResultIsSuccess(t *testing.T) {
	if !VulkanResultIsSuccess(vk.Success) {
		t.Error("VK_SUCCESS should be success")
	}
	if !VulkanResultIsSuccess(vk.Suboptimal) {
		t.Error("VK_SUBOPTIMAL_KHR is not an error code")
	}
	if VulkanResultIsSuccess(vk.ErrorOutOfDate) {
		t.Error("VK_ERROR_OUT_OF_DATE_KHR should not be success")
	}
	if VulkanResultIsSuccess(vk.ErrorDeviceLost) {
		t.Error("VK_ERROR_DEVICE_LOST should not be success")
	}
}

func TestVulkanSafeString(t *testing.T) {
	if got := VulkanSafeString("VK_LAYER_KHRONOS_validation"); got[len(got)-1] != '\x00' {
		t.Error("safe string must be null terminated")
	}
	already := "abc\x00"
	if got := VulkanSafeString(already); got != already {
		t.Errorf("already terminated string must be unchanged, got %q", got)
	}
	if got := VulkanSafeString(""); got != "\x00" {
		t.Errorf("empty string must become a lone terminator, got %q", got)
	}
}

func TestVulkanSafeStringsDoesNotMutateInput(t *testing.T) {
	in := []string{"a", "b"}
	out := VulkanSafeStrings(in)
	if in[0] != "a" {
		t.Error("input slice must not be mutated")
	}
	if out[0] != "a\x00" || out[1] != "b\x00" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestVulkanTrimString(t *testing.T) {
	arr := []byte{'G', 'P', 'U', 0, 0, 0}
	if got := VulkanTrimString(arr); got != "GPU" {
		t.Errorf("expected GPU, got %q", got)
	}
	if got := VulkanTrimString([]byte("abc")); got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
}
