package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/spaghettifunk/trekanten/engine/math"
)

// VulkanTexture is a sampled 2D image with its own sampler.
type VulkanTexture struct {
	Image   *VulkanImage
	Sampler vk.Sampler
}

// TextureCreate uploads RGBA8 pixel data into a device-local sampled image.
// When generateMips is true a full mip chain is blitted on the GPU.
func TextureCreate(context *VulkanContext, width, height uint32, pixels []byte, generateMips bool) (*VulkanTexture, error) {
	mipLevels := uint32(1)
	usage := vk.ImageUsageFlags(vk.ImageUsageTransferDstBit) | vk.ImageUsageFlags(vk.ImageUsageSampledBit)
	if generateMips {
		mipLevels = math.MipLevels(width, height)
		// Mip generation blits read from the previous level.
		usage |= vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit)
	}

	image, err := ImageCreateMipped(
		context,
		vk.ImageType2d,
		width,
		height,
		mipLevels,
		vk.FormatR8g8b8a8Srgb,
		vk.ImageTilingOptimal,
		usage,
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		true,
		vk.ImageAspectFlags(vk.ImageAspectColorBit))
	if err != nil {
		return nil, err
	}

	staging, err := BufferCreateStagingWithData(context, pixels)
	if err != nil {
		image.ImageDestroy(context)
		return nil, err
	}
	defer staging.Destroy(context)

	commandBuffer, err := AllocateAndBeginSingleUse(context, context.Device.GraphicsCommandPool)
	if err != nil {
		image.ImageDestroy(context)
		return nil, err
	}
	if err := image.ImageTransitionLayout(context, commandBuffer, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		image.ImageDestroy(context)
		return nil, err
	}
	image.ImageCopyFromBuffer(commandBuffer, staging.Handle)
	if generateMips {
		// Leaves every level in shader-readonly layout.
		if err := image.ImageGenerateMipmaps(context, commandBuffer); err != nil {
			image.ImageDestroy(context)
			return nil, err
		}
	} else {
		if err := image.ImageTransitionLayout(context, commandBuffer, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
			image.ImageDestroy(context)
			return nil, err
		}
	}
	if err := commandBuffer.EndSingleUse(context, context.Device.GraphicsCommandPool, context.Device.GraphicsQueue); err != nil {
		image.ImageDestroy(context)
		return nil, err
	}

	sampler, err := SamplerCreate(context, mipLevels)
	if err != nil {
		image.ImageDestroy(context)
		return nil, err
	}

	return &VulkanTexture{
		Image:   image,
		Sampler: sampler,
	}, nil
}

// SamplerCreate builds a linear-filtered repeat sampler covering the given
// mip range, with anisotropy when the device offers it.
func SamplerCreate(context *VulkanContext, mipLevels uint32) (vk.Sampler, error) {
	createInfo := vk.SamplerCreateInfo{
		SType:            vk.StructureTypeSamplerCreateInfo,
		MagFilter:        vk.FilterLinear,
		MinFilter:        vk.FilterLinear,
		AddressModeU:     vk.SamplerAddressModeRepeat,
		AddressModeV:     vk.SamplerAddressModeRepeat,
		AddressModeW:     vk.SamplerAddressModeRepeat,
		BorderColor:      vk.BorderColorIntOpaqueBlack,
		CompareEnable:    vk.False,
		CompareOp:        vk.CompareOpAlways,
		MipmapMode:       vk.SamplerMipmapModeLinear,
		MipLodBias:       0,
		MinLod:           0,
		MaxLod:           float32(mipLevels),
	}
	if context.Device.Features.SamplerAnisotropy == vk.True {
		limits := context.Device.Properties.Limits
		limits.Deref()
		createInfo.AnisotropyEnable = vk.True
		createInfo.MaxAnisotropy = limits.MaxSamplerAnisotropy
	}

	var sampler vk.Sampler
	if err := context.LockPool.SafeCall(SamplerManagement, func() error {
		if res := vk.CreateSampler(context.Device.LogicalDevice, &createInfo, context.Allocator, &sampler); res != vk.Success {
			return VulkanError(res, "vkCreateSampler")
		}
		return nil
	}); err != nil {
		return vk.NullSampler, err
	}
	return sampler, nil
}

func (t *VulkanTexture) Destroy(context *VulkanContext) {
	if t.Sampler != vk.NullSampler {
		vk.DestroySampler(context.Device.LogicalDevice, t.Sampler, context.Allocator)
		t.Sampler = vk.NullSampler
	}
	if t.Image != nil {
		t.Image.ImageDestroy(context)
		t.Image = nil
	}
}
